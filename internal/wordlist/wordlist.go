// Package wordlist loads word bank files for the arena.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const commentPrefix = "#"

// LoadWords reads one word per line from path. Blank lines and lines
// starting with '#' are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Read-only file, close errors carry no data loss.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no words", path)
	}
	return words, nil
}
