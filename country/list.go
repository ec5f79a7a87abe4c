package country

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseList reads a country list: one code per line, `#` starts a comment
// (full-line or trailing), blank lines are skipped. Every code must resolve;
// the first unknown code fails the whole parse so a run never produces a
// partial table. Duplicates keep their first position.
func ParseList(r io.Reader) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		entry, err := Resolve(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if seen[entry.Code] {
			continue
		}
		seen[entry.Code] = true
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read country list: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("country list contains no codes")
	}
	return entries, nil
}

// LoadList reads and parses the country list file at path.
func LoadList(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open country list: %w", err)
	}
	defer f.Close()

	entries, err := ParseList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
