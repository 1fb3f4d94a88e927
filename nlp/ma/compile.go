package ma

import (
	"fmt"
	"math"

	"moran/nlp/format/lex"
	"moran/nlp/lm"
	"moran/nlp/types"
)

// MinEntryLogFreq clamps compiled per-surface log-frequencies so every
// dictionary entry outranks the unknown-edge fallback.
const MinEntryLogFreq = -14.0

type CompileOptions struct {
	Name  string
	Order int
}

// CompileModel converts prepared lexicon entries and n-gram counts into a
// model payload. This is format conversion: frequencies become smoothed
// log-probabilities, no estimation beyond that happens here.
func CompileModel(entries []lex.Entry, counts []lex.NgramCount, opts CompileOptions) (*ModelPayload, error) {
	order := opts.Order
	if order == 0 {
		order = lm.DefaultOrder
	}
	if order < 1 || order > lm.MaxOrder {
		return nil, fmt.Errorf("unsupported language model order %d", order)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("cannot compile an empty lexicon")
	}

	builtin := make(map[string]bool, len(types.BuiltinTags))
	for _, tag := range types.BuiltinTags {
		builtin[tag] = true
	}
	var customTags []string
	seen := make(map[string]bool)
	addTag := func(tag string) {
		if tag == "" || builtin[tag] || seen[tag] {
			return
		}
		seen[tag] = true
		customTags = append(customTags, tag)
	}

	// relative frequency of each entry within its surface's candidates
	surfaceTotals := make(map[string]float64, len(entries))
	for _, entry := range entries {
		surfaceTotals[entry.Surface] += entryWeight(entry)
	}
	payloadEntries := make([]EntryPayload, 0, len(entries))
	for _, entry := range entries {
		if entry.Surface == "" || entry.Tag == "" {
			return nil, fmt.Errorf("lexicon entry %v has an empty surface or tag", entry)
		}
		addTag(entry.Tag)
		logFreq := math.Log(entryWeight(entry) / surfaceTotals[entry.Surface])
		if logFreq < MinEntryLogFreq {
			logFreq = MinEntryLogFreq
		}
		payloadEntries = append(payloadEntries, EntryPayload{
			Surface:   entry.Surface,
			Lemma:     entry.Lemma,
			Tag:       entry.Tag,
			LogFreq:   logFreq,
			AlloGroup: entry.AlloGroup,
		})
	}

	var (
		unigrams  []TagProb
		ngrams    []NgramProb
		uniTotal  float64
		ctxTotals = make(map[string]float64)
	)
	for _, row := range counts {
		if row.Count <= 0 {
			return nil, fmt.Errorf("non-positive n-gram count for %v %s", row.Context, row.Tag)
		}
		if len(row.Context) > order-1 {
			return nil, fmt.Errorf("%d-tag context exceeds order %d", len(row.Context), order)
		}
		addTag(row.Tag)
		for _, tag := range row.Context {
			addTag(tag)
		}
		if len(row.Context) == 0 {
			uniTotal += row.Count
		} else {
			ctxTotals[ctxKey(row.Context)] += row.Count
		}
	}
	for _, row := range counts {
		if len(row.Context) == 0 {
			unigrams = append(unigrams, TagProb{
				Tag:     row.Tag,
				LogProb: math.Log(row.Count / uniTotal),
			})
		} else {
			ngrams = append(ngrams, NgramProb{
				Context: row.Context,
				Tag:     row.Tag,
				LogProb: math.Log(row.Count / ctxTotals[ctxKey(row.Context)]),
			})
		}
	}

	return &ModelPayload{
		Schema:   ModelSchema,
		Name:     opts.Name,
		Order:    order,
		Tags:     customTags,
		Entries:  payloadEntries,
		Unigrams: unigrams,
		Ngrams:   ngrams,
	}, nil
}

func entryWeight(entry lex.Entry) float64 {
	if entry.Freq > 0 {
		return entry.Freq
	}
	return 1
}

func ctxKey(ctx []string) string {
	key := ""
	for _, tag := range ctx {
		key += tag + "\x00"
	}
	return key
}
