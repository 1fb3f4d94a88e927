package ma

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"moran/nlp/format/lex"
	"moran/nlp/lm"
	"moran/nlp/types"
)

func testPayload(t *testing.T) *ModelPayload {
	t.Helper()
	entries := []lex.Entry{
		{Surface: "cats", Lemma: "cat", Tag: "PLURAL", Freq: 8},
		{Surface: "cat", Lemma: "cat", Tag: "NOUN", Freq: 10},
		{Surface: "run", Lemma: "run", Tag: "VERB", Freq: 10},
		{Surface: "run", Lemma: "run", Tag: "NOUN", Freq: 5},
		{Surface: "ran", Lemma: "ran", Tag: "VERB", Freq: 2, AlloGroup: "run"},
	}
	counts := []lex.NgramCount{
		{Tag: "NOUN", Count: 10},
		{Tag: "VERB", Count: 10},
		{Tag: "PLURAL", Count: 5},
		{Context: []string{"PLURAL"}, Tag: "VERB", Count: 8},
		{Context: []string{"NOUN"}, Tag: "VERB", Count: 4},
	}
	payload, err := CompileModel(entries, counts, CompileOptions{Name: "test", Order: 2})
	if err != nil {
		t.Fatal("CompileModel failed:", err)
	}
	return payload
}

func TestCompileModel(t *testing.T) {
	payload := testPayload(t)
	if payload.Order != 2 || payload.Name != "test" {
		t.Error("Wrong payload header:", payload.Name, payload.Order)
	}
	if len(payload.Entries) != 5 {
		t.Error("Expected 5 entries, got", len(payload.Entries))
	}
	if len(payload.Tags) != 1 || payload.Tags[0] != "PLURAL" {
		t.Error("Only PLURAL is a custom tag, got", payload.Tags)
	}
	for _, entry := range payload.Entries {
		if entry.LogFreq > 0 || entry.LogFreq < MinEntryLogFreq {
			t.Error("Log-frequency out of range for", entry.Surface, entry.LogFreq)
		}
		// unique surfaces get the whole probability mass
		if entry.Surface != "run" && entry.LogFreq != 0 {
			t.Error("Unique surface should have log-freq 0:", entry.Surface, entry.LogFreq)
		}
		// the ambiguous surface splits its mass
		if entry.Surface == "run" && entry.LogFreq >= 0 {
			t.Error("Ambiguous surface should have negative log-freq:",
				entry.Tag, entry.LogFreq)
		}
	}
}

func TestCompileModelOrderBounds(t *testing.T) {
	entries := []lex.Entry{{Surface: "cat", Lemma: "cat", Tag: "NOUN", Freq: 1}}
	payload, err := CompileModel(entries, nil, CompileOptions{Name: "test"})
	if err != nil {
		t.Fatal("CompileModel failed:", err)
	}
	if payload.Order != lm.DefaultOrder {
		t.Error("Omitted order should default to", lm.DefaultOrder,
			"got", payload.Order)
	}
	_, err = CompileModel(entries, nil, CompileOptions{Order: lm.MaxOrder + 1})
	if err == nil {
		t.Error("Order beyond the model maximum should be rejected")
	}
}

func TestLoadRejectsOversizedTagSet(t *testing.T) {
	payload := testPayload(t)
	payload.Tags = make([]string, 0, types.MaxTagIndex)
	for i := 0; i < types.MaxTagIndex; i++ {
		payload.Tags = append(payload.Tags, fmt.Sprintf("T%d", i))
	}
	_, _, err := Load(payload, LoadOptions{})
	if !errors.Is(err, ErrCorruptModel) {
		t.Error("Oversized tag vocabulary should be ErrCorruptModel, got", err)
	}
}

func TestModelRoundtrip(t *testing.T) {
	payload := testPayload(t)
	filename := filepath.Join(t.TempDir(), "test.model")
	if err := WriteModel(filename, payload); err != nil {
		t.Fatal("WriteModel failed:", err)
	}
	read, err := ReadModel(filename)
	if err != nil {
		t.Fatal("ReadModel failed:", err)
	}
	if read.Name != payload.Name || read.Order != payload.Order ||
		len(read.Entries) != len(payload.Entries) ||
		len(read.Ngrams) != len(payload.Ngrams) {
		t.Error("Payload changed across write/read")
	}
}

func TestReadModelMissingFile(t *testing.T) {
	_, err := ReadModel(filepath.Join(t.TempDir(), "missing.model"))
	if err == nil {
		t.Fatal("Expected error for missing model file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("Missing file should surface as an I/O error, got", err)
	}
	if errors.Is(err, ErrCorruptModel) {
		t.Error("Missing file is not a corrupt model")
	}
}

func TestReadModelCorrupt(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "garbage.model")
	if err := os.WriteFile(filename, []byte("\xc1 this is not a model"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadModel(filename)
	if !errors.Is(err, ErrCorruptModel) {
		t.Error("Garbage file should be ErrCorruptModel, got", err)
	}
}

func TestReadModelWrongSchema(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "future.model")
	future := testPayload(t)
	future.Schema = ModelSchema + 7
	file, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	if err := msgpack.NewEncoder(file).Encode(future); err != nil {
		t.Fatal(err)
	}
	file.Close()
	_, err = ReadModel(filename)
	if !errors.Is(err, ErrCorruptModel) {
		t.Error("Unrecognized schema should be ErrCorruptModel, got", err)
	}
}

func TestLoadIntegratesAllomorphs(t *testing.T) {
	payload := testPayload(t)
	lexicon, _, err := Load(payload, LoadOptions{IntegrateAllomorphs: true})
	if err != nil {
		t.Fatal("Load failed:", err)
	}
	candidates := lexicon.Lookup("ran", 0)
	if len(candidates) != 1 {
		t.Fatal("Expected one candidate for ran, got", candidates)
	}
	if candidates[0].Lemma != "run" {
		t.Error("Allomorph should resolve to canonical lemma run, got",
			candidates[0].Lemma)
	}

	lexicon, _, err = Load(payload, LoadOptions{})
	if err != nil {
		t.Fatal("Load failed:", err)
	}
	if got := lexicon.Lookup("ran", 0)[0].Lemma; got != "ran" {
		t.Error("Without integration the lemma should stay ran, got", got)
	}
}

func TestLoadFreezesTagSet(t *testing.T) {
	lexicon, model, err := Load(testPayload(t), LoadOptions{IntegrateAllomorphs: true})
	if err != nil {
		t.Fatal("Load failed:", err)
	}
	if !lexicon.Tags.Frozen {
		t.Error("Tag set should be frozen after load")
	}
	if model.NumTags() != lexicon.Tags.Len() {
		t.Error("Model tag vocabulary should match the lexicon's")
	}
	if model.Transitions() != 2 {
		t.Error("Expected 2 transition events, got", model.Transitions())
	}
}
