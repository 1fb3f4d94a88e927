package app

import (
	"testing"

	"moran/nlp/analyzer"
	"moran/nlp/format/lex"
	"moran/nlp/ma"
)

func testAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	entries := []lex.Entry{
		{Surface: "cat", Lemma: "cat", Tag: "NOUN", Freq: 10},
		{Surface: "cats", Lemma: "cat", Tag: "PLURAL", Freq: 8},
		{Surface: "run", Lemma: "run", Tag: "VERB", Freq: 10},
	}
	counts := []lex.NgramCount{
		{Tag: "NOUN", Count: 10},
		{Tag: "VERB", Count: 10},
		{Tag: "PLURAL", Count: 5},
	}
	payload, err := ma.CompileModel(entries, counts, ma.CompileOptions{Name: "test", Order: 2})
	if err != nil {
		t.Fatal("CompileModel failed:", err)
	}
	anl, err := analyzer.NewFromPayload(payload, analyzer.DefaultOptions())
	if err != nil {
		t.Fatal("NewFromPayload failed:", err)
	}
	return anl
}

func TestLatticeStats(t *testing.T) {
	anl := testAnalyzer(t)
	stats := latticeStats(anl, []string{"catsrun", "zz"})
	// catsrun: a, t, s, u, n are uncovered; zz: z twice
	if stats.UnknownEdges != 7 {
		t.Error("Expected 7 unknown edges over the batch, got", stats.UnknownEdges)
	}
	if len(stats.UniqUnknown) != 6 {
		t.Error("Expected 6 unique unknown surfaces, got", stats.UniqUnknown)
	}
	if stats.TotalEdges <= stats.UnknownEdges {
		t.Error("Dictionary edges missing from the totals:", stats.TotalEdges)
	}
}

func TestLatticeStatsAllCovered(t *testing.T) {
	anl := testAnalyzer(t)
	stats := latticeStats(anl, []string{"catsrun"})
	if count, exists := stats.UniqUnknown["cats"]; exists {
		t.Error("Dictionary surface counted as unknown:", count)
	}
}
