// Package lex reads the text sources a model is compiled from: a lexicon
// file and an n-gram counts file. Both are tab-separated, '#' starts a
// comment line, blank lines are ignored.
//
// Lexicon rows:   surface <TAB> lemma <TAB> tag [<TAB> freq [<TAB> allogroup]]
// N-gram rows:    context-tags (space-separated, empty for unigrams)
//                 <TAB> tag <TAB> count
package lex

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const APPROX_LEX_SIZE = 100000

type Entry struct {
	Surface   string
	Lemma     string
	Tag       string
	Freq      float64
	AlloGroup string
}

type NgramCount struct {
	Context []string
	Tag     string
	Count   float64
}

func ReadEntries(reader io.Reader) ([]Entry, error) {
	retval := make([]Entry, 0, APPROX_LEX_SIZE)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if skipLine(line) {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("lexicon line %d: %d fields, want at least 3",
				lineNum, len(fields))
		}
		entry := Entry{
			Surface: norm.NFC.String(fields[0]),
			Lemma:   norm.NFC.String(fields[1]),
			Tag:     fields[2],
		}
		if len(fields) > 3 && fields[3] != "" {
			freq, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("lexicon line %d: bad frequency %q",
					lineNum, fields[3])
			}
			entry.Freq = freq
		}
		if len(fields) > 4 {
			entry.AlloGroup = norm.NFC.String(fields[4])
		}
		retval = append(retval, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return retval, nil
}

func ReadEntriesFile(filename string) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	entries, err := ReadEntries(file)
	if err != nil {
		return nil, err
	}
	log.Println("Found", len(entries), "entries in lexicon file:", filename)
	return entries, nil
}

func ReadNgrams(reader io.Reader) ([]NgramCount, error) {
	var retval []NgramCount
	scanner := bufio.NewScanner(reader)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if skipLine(line) {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("n-gram line %d: %d fields, want 3",
				lineNum, len(fields))
		}
		count, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("n-gram line %d: bad count %q", lineNum, fields[2])
		}
		row := NgramCount{Tag: fields[1], Count: count}
		if ctx := strings.TrimSpace(fields[0]); ctx != "" {
			row.Context = strings.Fields(ctx)
		}
		retval = append(retval, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return retval, nil
}

func ReadNgramsFile(filename string) ([]NgramCount, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadNgrams(file)
}

func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || trimmed[0] == '#'
}
