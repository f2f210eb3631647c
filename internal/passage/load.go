package passage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ReadLines returns the trimmed non-empty lines of r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// LoadLines reads one entry per line from path.
func LoadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only file.
			_ = cerr
		}
	}()
	lines, err := ReadLines(file)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPassages)
	}
	return lines, nil
}

// LoadFile reads custom passages, one per line. Titles are derived from the
// file name and line number.
func LoadFile(path string) ([]Passage, error) {
	lines, err := LoadLines(path)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := make([]Passage, len(lines))
	for i, line := range lines {
		out[i] = Passage{
			Title: fmt.Sprintf("%s #%d", base, i+1),
			Text:  line,
		}
	}
	return out, nil
}

// LoadWords reads a word list for words mode. Lines that are not a single
// word of letters are skipped.
func LoadWords(path string) ([]string, error) {
	lines, err := LoadLines(path)
	if err != nil {
		return nil, err
	}
	words := lines[:0]
	for _, line := range lines {
		if isWord(line) {
			words = append(words, line)
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: no usable words: %w", path, ErrNoPassages)
	}
	return words, nil
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
