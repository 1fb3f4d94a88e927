// Package analyzer ties the dictionary store, scorer and disambiguator
// into the morphological analysis entry point.
package analyzer

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"moran/nlp/disambig"
	"moran/nlp/lm"
	"moran/nlp/ma"
	"moran/nlp/types"
)

// ErrInvalidInput marks per-call input errors; the analyzer itself is
// unaffected and remains usable.
var ErrInvalidInput = errors.New("invalid input")

const DefaultBeamSize = 8

type Options struct {
	// NumThreads is the worker count for AnalyzeAll. Single Analyze calls
	// always run on the caller's goroutine.
	NumThreads int
	// IntegrateAllomorphs merges allomorphic surface variants onto their
	// canonical lemma at model load.
	IntegrateAllomorphs bool
	// BeamSize bounds the per-node states retained during path search.
	BeamSize int
	// NormalizeNFC normalizes input to NFC before analysis; token offsets
	// then refer to the normalized text.
	NormalizeNFC bool
}

func DefaultOptions() Options {
	return Options{
		NumThreads:          1,
		IntegrateAllomorphs: true,
		BeamSize:            DefaultBeamSize,
	}
}

// Analyzer owns one loaded model. Construction is expensive; instances
// are safe for concurrent Analyze calls against the shared read-only
// model, with all per-call state kept call-local.
type Analyzer struct {
	lexicon *ma.Lexicon
	model   *lm.Model
	opts    Options
}

// New loads a model file and builds an analyzer. Fails with a wrapped
// I/O error if the file is unreadable, or ma.ErrCorruptModel if the
// format or schema version is unrecognized.
func New(modelPath string, opts Options) (*Analyzer, error) {
	payload, err := ma.ReadModel(modelPath)
	if err != nil {
		return nil, err
	}
	return NewFromPayload(payload, opts)
}

// NewFromPayload builds an analyzer from an in-memory model payload.
func NewFromPayload(payload *ma.ModelPayload, opts Options) (*Analyzer, error) {
	if opts.NumThreads < 1 {
		opts.NumThreads = 1
	}
	if opts.BeamSize < 1 {
		opts.BeamSize = DefaultBeamSize
	}
	lexicon, model, err := ma.Load(payload, ma.LoadOptions{
		IntegrateAllomorphs: opts.IntegrateAllomorphs,
	})
	if err != nil {
		return nil, err
	}
	return &Analyzer{lexicon: lexicon, model: model, opts: opts}, nil
}

func (a *Analyzer) Lexicon() *ma.Lexicon {
	return a.lexicon
}

// Analyze segments text into its topK most plausible morpheme sequences,
// sorted by non-increasing score. Deterministic for identical inputs.
func (a *Analyzer) Analyze(text string, topK int) ([]types.Analysis, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: top-k must be at least 1, got %d",
			ErrInvalidInput, topK)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}
	if a.opts.NormalizeNFC {
		text = norm.NFC.String(text)
	}
	lat := a.lexicon.BuildLattice(text)
	a.model.Annotate(lat)
	paths := disambig.Search(lat, a.model, topK, a.opts.BeamSize)
	retval := make([]types.Analysis, len(paths))
	for i, path := range paths {
		retval[i] = FormatPath(path, text)
	}
	return retval, nil
}

// AnalyzeAll analyzes texts with NumThreads workers. Results are indexed
// like the input; the first input error aborts the batch.
func (a *Analyzer) AnalyzeAll(texts []string, topK int) ([][]types.Analysis, error) {
	retval := make([][]types.Analysis, len(texts))
	var group errgroup.Group
	group.SetLimit(a.opts.NumThreads)
	for i, text := range texts {
		i, text := i, text
		group.Go(func() error {
			results, err := a.Analyze(text, topK)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			retval[i] = results
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return retval, nil
}

// FormatPath converts a winning path into ordered token records. The
// path must be contiguous and cover text exactly; a violation is an
// internal bug and panics.
func FormatPath(path *types.Path, text string) types.Analysis {
	if err := path.Verify(text); err != nil {
		panic(fmt.Sprintf("Invalid path for input %q: %v", text, err))
	}
	tokens := make([]types.AnalyzedToken, len(path.Edges))
	for i, edge := range path.Edges {
		tokens[i] = types.AnalyzedToken{
			Surface: edge.Morpheme.Surface,
			Lemma:   edge.Morpheme.Lemma,
			Tag:     edge.Morpheme.Tag,
			Start:   edge.From(),
			End:     edge.To(),
		}
	}
	return types.Analysis{Tokens: tokens, Score: path.Score}
}
