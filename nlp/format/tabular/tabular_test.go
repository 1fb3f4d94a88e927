package tabular

import (
	"bytes"
	"strings"
	"testing"

	"moran/nlp/types"
)

func TestWrite(t *testing.T) {
	corpus := [][]types.Analysis{
		{
			{
				Tokens: []types.AnalyzedToken{
					{Surface: "cats", Lemma: "cat", Tag: "PLURAL", Start: 0, End: 4},
					{Surface: "run", Lemma: "run", Tag: "VERB", Start: 4, End: 7},
				},
				Score: -1.25,
			},
		},
	}
	var buf bytes.Buffer
	if err := Write(&buf, corpus); err != nil {
		t.Fatal("Write failed:", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatal("Expected header and two token rows, got", lines)
	}
	if lines[0] != "# path 1 score -1.250000" {
		t.Error("Wrong path header:", lines[0])
	}
	if lines[1] != "1\tcats\tcat\tPLURAL\t0\t4" {
		t.Error("Wrong token row:", lines[1])
	}
	if lines[2] != "2\trun\trun\tVERB\t4\t7" {
		t.Error("Wrong token row:", lines[2])
	}
}
