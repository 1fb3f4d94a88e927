package ma

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"moran/nlp/lm"
	"moran/nlp/types"
)

// ModelSchema is the current model file schema version. Bump when the
// payload format changes; files with any other version are rejected.
const ModelSchema uint16 = 1

var ErrCorruptModel = errors.New("corrupt or unrecognized model file")

// ModelPayload is the serialized form of a compiled model: the full
// lexicon plus the language model events. Tags are stored as strings and
// resolved into the dense index at load time.
type ModelPayload struct {
	Schema uint16
	Name   string
	Order  int

	// Tags lists model-defined tags beyond the builtin set, in the order
	// their dense indices were assigned at compile time.
	Tags []string

	Entries  []EntryPayload
	Unigrams []TagProb
	Ngrams   []NgramProb
}

type EntryPayload struct {
	Surface   string
	Lemma     string
	Tag       string
	LogFreq   float64
	AlloGroup string
}

type TagProb struct {
	Tag     string
	LogProb float64
}

type NgramProb struct {
	Context []string
	Tag     string
	LogProb float64
}

// ReadModel decodes a model file. Open/read failures surface as wrapped
// I/O errors; decode failures and schema mismatches as ErrCorruptModel.
func ReadModel(filename string) (*ModelPayload, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	defer file.Close()

	payload := &ModelPayload{}
	if err := msgpack.NewDecoder(file).Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	if payload.Schema != ModelSchema {
		return nil, fmt.Errorf("%w: schema %d, want %d",
			ErrCorruptModel, payload.Schema, ModelSchema)
	}
	if payload.Order < 1 || payload.Order > lm.MaxOrder {
		return nil, fmt.Errorf("%w: language model order %d",
			ErrCorruptModel, payload.Order)
	}
	return payload, nil
}

// WriteModel writes the payload atomically: encode to a temp file in the
// target directory, then rename over the destination.
func WriteModel(filename string, payload *ModelPayload) error {
	payload.Schema = ModelSchema
	file, err := os.CreateTemp(filepath.Dir(filename), "model-*.tmp")
	if err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	defer os.Remove(file.Name())

	if err := msgpack.NewEncoder(file).Encode(payload); err != nil {
		file.Close()
		return fmt.Errorf("writing model: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return os.Rename(file.Name(), filename)
}

// LoadOptions control how a payload becomes a live lexicon + model.
type LoadOptions struct {
	// IntegrateAllomorphs resolves entries of an allomorph group to the
	// group's canonical lemma, merging the resulting duplicates.
	IntegrateAllomorphs bool
}

// Load builds the runtime dictionary store and language model from a
// payload. The returned tag set is frozen.
func Load(payload *ModelPayload, opts LoadOptions) (*Lexicon, *lm.Model, error) {
	tags := types.NewTagSet()
	for _, tag := range payload.Tags {
		tags.Add(tag)
	}
	for _, entry := range payload.Entries {
		if entry.Tag != "" {
			tags.Add(entry.Tag)
		}
	}
	if tags.Len() > types.MaxTagIndex {
		return nil, nil, fmt.Errorf("%w: %d tags exceed the index limit",
			ErrCorruptModel, tags.Len())
	}

	lexicon := NewLexicon(payload.Name, tags)
	merged := make(map[string]*types.Morpheme, len(payload.Entries))
	for _, entry := range payload.Entries {
		if entry.Surface == "" || entry.Tag == "" {
			return nil, nil, fmt.Errorf("%w: entry with empty surface or tag",
				ErrCorruptModel)
		}
		m := &types.Morpheme{
			Surface:   entry.Surface,
			Lemma:     entry.Lemma,
			Tag:       entry.Tag,
			LogFreq:   entry.LogFreq,
			AlloGroup: entry.AlloGroup,
		}
		if opts.IntegrateAllomorphs && m.AlloGroup != "" {
			m.Lemma = m.AlloGroup
		}
		key := m.Surface + "\x00" + m.Lemma + "\x00" + m.Tag
		if prev, exists := merged[key]; exists {
			// variants collapse onto one entry; keep the likelier one
			if m.LogFreq > prev.LogFreq {
				prev.LogFreq = m.LogFreq
			}
			continue
		}
		merged[key] = m
		lexicon.Add(m)
	}
	tags.Freeze()

	model := lm.New(payload.Order, tags.Len())
	for _, uni := range payload.Unigrams {
		tag, exists := tags.IndexOf(uni.Tag)
		if !exists {
			return nil, nil, fmt.Errorf("%w: unigram for unknown tag %q",
				ErrCorruptModel, uni.Tag)
		}
		model.SetUnigram(tag, uni.LogProb)
	}
	for _, ngram := range payload.Ngrams {
		if len(ngram.Context) == 0 || len(ngram.Context) > payload.Order-1 {
			return nil, nil, fmt.Errorf("%w: %d-tag context in an order-%d model",
				ErrCorruptModel, len(ngram.Context), payload.Order)
		}
		ctx := make([]int, len(ngram.Context))
		for i, tag := range ngram.Context {
			id, exists := tags.IndexOf(tag)
			if !exists {
				return nil, nil, fmt.Errorf("%w: n-gram context tag %q",
					ErrCorruptModel, tag)
			}
			ctx[i] = id
		}
		tag, exists := tags.IndexOf(ngram.Tag)
		if !exists {
			return nil, nil, fmt.Errorf("%w: n-gram tag %q",
				ErrCorruptModel, ngram.Tag)
		}
		model.SetTransition(ctx, tag, ngram.LogProb)
	}
	return lexicon, model, nil
}

// LoadFile reads and loads a model file in one step.
func LoadFile(filename string, opts LoadOptions) (*Lexicon, *lm.Model, error) {
	payload, err := ReadModel(filename)
	if err != nil {
		return nil, nil, err
	}
	return Load(payload, opts)
}
