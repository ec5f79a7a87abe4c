/*
Copyright © 2025 The tzgrid Authors
*/
package main

import "github.com/tzgrid/tzgrid/cmd"

func main() {
	cmd.Execute()
}
