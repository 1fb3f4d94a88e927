// Package lm scores lattice edges with an interpolated n-gram language
// model over dense tag indices.
//
// All scores are log-probabilities and combine by addition. The base term
// (a morpheme's log-frequency) is annotated onto edges up front; the
// context term P(tag | trailing tags) is evaluated lazily during path
// search, per (predecessor-state, edge) pair, so the lattice never has to
// be expanded per context.
package lm

import (
	"fmt"
	"math"

	"moran/nlp/types"
)

const (
	DefaultOrder = 2
	MaxOrder     = 4

	// Lambda weighs the context term against the unigram term in the
	// interpolation.
	Lambda = 0.8

	// FloorLogProb bounds unseen events so scores stay finite.
	FloorLogProb = -18.0
)

const ctxBits = 16

// Model holds unigram log-probs per tag and transition log-probs keyed by
// packed trailing-tag context. Read-only after load, safe for concurrent
// use.
type Model struct {
	Order    int
	unigrams []float64
	trans    map[uint64]float64
	ctxMask  uint64
}

func New(order, numTags int) *Model {
	if order < 1 || order > MaxOrder {
		panic(fmt.Sprintf("Unsupported language model order %d", order))
	}
	unigrams := make([]float64, numTags)
	for i := range unigrams {
		unigrams[i] = FloorLogProb
	}
	var mask uint64
	if order > 1 {
		mask = 1<<(uint(order-1)*ctxBits) - 1
	}
	return &Model{
		Order:    order,
		unigrams: unigrams,
		trans:    make(map[uint64]float64),
		ctxMask:  mask,
	}
}

func (m *Model) SetUnigram(tag int, logProb float64) {
	m.unigrams[tag] = math.Max(logProb, FloorLogProb)
}

func (m *Model) SetTransition(ctx []int, tag int, logProb float64) {
	if len(ctx) == 0 || len(ctx) > m.Order-1 {
		panic(fmt.Sprintf("Transition context of %d tags in an order-%d model",
			len(ctx), m.Order))
	}
	var key uint64
	for _, t := range ctx {
		key = m.Push(key, t)
	}
	m.trans[key<<ctxBits|uint64(tag+1)] = math.Max(logProb, FloorLogProb)
}

// EmptyContext is the Markov state at the start of the input.
func (m *Model) EmptyContext() uint64 {
	return 0
}

// Push appends a tag to a packed context key, dropping the oldest tag once
// order-1 tags are held. Tag ids are stored off by one so a zero slot
// always means "no tag".
func (m *Model) Push(ctx uint64, tag int) uint64 {
	if m.Order == 1 {
		return 0
	}
	return (ctx<<ctxBits | uint64(tag+1)) & m.ctxMask
}

// Transition returns the context-dependent log-prob of tag following ctx:
// log(Lambda*P(tag|ctx) + (1-Lambda)*P(tag)), floored for unseen events.
func (m *Model) Transition(ctx uint64, tag int) float64 {
	uni := m.unigrams[tag]
	if m.Order == 1 {
		return uni
	}
	backoff := math.Log1p(-Lambda) + uni
	cond, exists := m.trans[ctx<<ctxBits|uint64(tag+1)]
	if !exists {
		return math.Max(backoff, FloorLogProb)
	}
	interp := math.Log(Lambda*math.Exp(cond) + (1-Lambda)*math.Exp(uni))
	return math.Max(interp, FloorLogProb)
}

// Annotate fills each edge's base score from its morpheme's
// log-frequency. The context term is added during search.
func (m *Model) Annotate(lat *types.Lattice) {
	for _, edge := range lat.Edges {
		edge.Score = edge.Morpheme.LogFreq
	}
}

// Transitions returns the number of stored transition events.
func (m *Model) Transitions() int {
	return len(m.trans)
}

// NumTags returns the size of the tag vocabulary the model was built for.
func (m *Model) NumTags() int {
	return len(m.unigrams)
}

// Each calls f for every stored transition with its unpacked context.
// Used when serializing the model.
func (m *Model) Each(f func(ctx []int, tag int, logProb float64)) {
	for key, logProb := range m.trans {
		tag := int(key&(1<<ctxBits-1)) - 1
		ctxKey := key >> ctxBits
		var ctx []int
		for ctxKey != 0 {
			ctx = append([]int{int(ctxKey&(1<<ctxBits-1)) - 1}, ctx...)
			ctxKey >>= ctxBits
		}
		f(ctx, tag, logProb)
	}
}
