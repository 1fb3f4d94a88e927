package lex

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadEntries(t *testing.T) {
	input := strings.Join([]string{
		"# lexicon fixture",
		"cat\tcat\tNOUN\t10",
		"",
		"cats\tcat\tPLURAL\t8",
		"ran\tran\tVERB\t2\trun",
		"x\tx\tSYM",
	}, "\n")
	entries, err := ReadEntries(strings.NewReader(input))
	if err != nil {
		t.Fatal("ReadEntries failed:", err)
	}
	if len(entries) != 4 {
		t.Fatal("Expected 4 entries, got", len(entries))
	}
	if entries[0].Surface != "cat" || entries[0].Freq != 10 {
		t.Error("Wrong first entry:", entries[0])
	}
	if entries[2].AlloGroup != "run" {
		t.Error("AlloGroup not read:", entries[2])
	}
	// freq column is optional
	if entries[3].Freq != 0 || entries[3].Tag != "SYM" {
		t.Error("Wrong short-row entry:", entries[3])
	}
}

func TestReadEntriesNormalizesNFC(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader("e\u0301\te\u0301\tNOUN\t1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Surface != "\u00e9" || entries[0].Lemma != "\u00e9" {
		t.Error("Surface and lemma should be NFC-normalized, got", entries[0])
	}
}

func TestReadEntriesBadRows(t *testing.T) {
	for _, input := range []string{
		"cat\tcat\n",
		"cat\tcat\tNOUN\tnotanumber\n",
	} {
		if _, err := ReadEntries(strings.NewReader(input)); err == nil {
			t.Error("Expected error for input", input)
		}
	}
}

func TestReadNgrams(t *testing.T) {
	input := strings.Join([]string{
		"# counts fixture",
		"\tNOUN\t10",
		"\tVERB\t10",
		"PLURAL\tVERB\t8",
		"NOUN VERB\tNOUN\t3",
	}, "\n")
	counts, err := ReadNgrams(strings.NewReader(input))
	if err != nil {
		t.Fatal("ReadNgrams failed:", err)
	}
	if len(counts) != 4 {
		t.Fatal("Expected 4 rows, got", len(counts))
	}
	if counts[0].Context != nil || counts[0].Tag != "NOUN" || counts[0].Count != 10 {
		t.Error("Wrong unigram row:", counts[0])
	}
	if !reflect.DeepEqual(counts[2].Context, []string{"PLURAL"}) {
		t.Error("Wrong bigram context:", counts[2])
	}
	if !reflect.DeepEqual(counts[3].Context, []string{"NOUN", "VERB"}) {
		t.Error("Wrong trigram context:", counts[3])
	}
}

func TestReadNgramsBadRows(t *testing.T) {
	for _, input := range []string{
		"NOUN\t10\n",
		"\tNOUN\tmany\n",
	} {
		if _, err := ReadNgrams(strings.NewReader(input)); err == nil {
			t.Error("Expected error for input", input)
		}
	}
}
