package main

import (
	"bufio"
	"os"
	"strings"
)

// loadWatchlist returns the ward names listed one per line in path. Blank
// lines and lines starting with # are skipped, and repeats (ignoring case and
// spacing) are dropped. A missing file yields an empty list without error.
func loadWatchlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var wards []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(strings.Join(strings.Fields(line), " "))
		if seen[key] {
			continue
		}
		seen[key] = true
		wards = append(wards, line)
	}
	return wards, scanner.Err()
}
