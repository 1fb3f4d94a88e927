package raw

// Package raw reads raw input files: one sentence per line, blank lines
// skipped.

import (
	"bufio"
	"io"
	"os"
	"strings"
)

func Read(reader io.Reader, limit int) ([]string, error) {
	var sentences []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if len(line) == 0 {
			continue
		}
		sentences = append(sentences, line)
		if limit > 0 && len(sentences) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file, limit)
}
