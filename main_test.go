package main

import (
	"testing"
)

// TestMainPackage verifies that the main package can be imported without errors
func TestMainPackage(t *testing.T) {
	// If we get here, the package imported successfully
	// This test mainly ensures that imports are valid
}
