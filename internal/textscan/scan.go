// Package textscan locates literal substrings in line-oriented text,
// backing the linescan command-line tool.
package textscan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// FindSubstring scans r line by line and returns the 1-based number of
// the first line containing needle. The match is case-sensitive. The
// second return value reports whether any line matched.
func FindSubstring(r io.Reader, needle string) (int, bool, error) {
	scanner := bufio.NewScanner(r)

	lineno := 1
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), needle) {
			return lineno, true, nil
		}
		lineno++
	}
	if err := scanner.Err(); err != nil {
		return 0, false, fmt.Errorf("failed to scan input: %w", err)
	}
	return 0, false, nil
}

// FindInFile opens path and searches it for needle. The file is read
// once, front to back; a missing file surfaces as the open error.
func FindInFile(path, needle string) (int, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return FindSubstring(f, needle)
}
