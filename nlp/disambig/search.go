// Package disambig finds the top-k highest scoring paths through a
// candidate lattice: forward dynamic programming over nodes in offset
// order, with beam pruning over partial-path states keyed by their
// trailing tag context (the Markov state the scorer conditions on).
package disambig

import (
	"fmt"
	"sort"

	"moran/alg/search"
	"moran/nlp/lm"
	"moran/nlp/types"
	"moran/util"
)

// Hypothesis is a scored partial path ending at some lattice node. Prev
// links form the backpointer chain used to reconstruct the path.
type Hypothesis struct {
	Edge    *types.Edge
	Prev    *Hypothesis
	Context uint64
	Tokens  int

	score float64
	seq   int
}

var _ search.Candidate = &Hypothesis{}

func (h *Hypothesis) Score() float64 {
	return h.score
}

// Better orders hypotheses by higher score, then fewer tokens (prefer
// longer morphemes), then insertion order. The seq tiebreak makes search
// output deterministic.
func Better(aCand, bCand search.Candidate) bool {
	a, b := aCand.(*Hypothesis), bCand.(*Hypothesis)
	if a.score != b.score {
		return a.score > b.score
	}
	if a.Tokens != b.Tokens {
		return a.Tokens < b.Tokens
	}
	return a.seq < b.seq
}

// Search returns up to k complete paths sorted by non-increasing score.
// beamSize bounds the states retained per node; a beam narrower than k
// cannot carry k survivors, so the effective per-node budget is
// max(beamSize, k). Empty input yields a single empty path with score 0.
func Search(lat *types.Lattice, model *lm.Model, k, beamSize int) []*types.Path {
	if k < 1 {
		panic(fmt.Sprintf("Requested top-%d paths", k))
	}
	if beamSize < 1 {
		panic(fmt.Sprintf("Beam of width %d", beamSize))
	}
	if lat.Top() == lat.Bottom() {
		return []*types.Path{{Edges: []*types.Edge{}, Score: 0}}
	}

	width := util.Max(beamSize, k)
	var seq int
	states := make(map[int][]*Hypothesis, lat.Top()-lat.Bottom())
	states[lat.Bottom()] = []*Hypothesis{{Context: model.EmptyContext()}}

	for _, pos := range lat.GetVertices() {
		if pos == lat.Top() {
			break
		}
		hyps := prune(states[pos], width, k)
		delete(states, pos)
		if len(hyps) == 0 {
			// node unreachable from the bottom
			continue
		}
		for _, hyp := range hyps {
			for _, edge := range lat.Outgoing(pos) {
				tag := edge.Morpheme.TagID
				next := &Hypothesis{
					Edge:    edge,
					Prev:    hyp,
					Context: model.Push(hyp.Context, tag),
					Tokens:  hyp.Tokens + 1,
					score:   hyp.score + edge.Score + model.Transition(hyp.Context, tag),
					seq:     seq,
				}
				seq++
				states[edge.To()] = append(states[edge.To()], next)
			}
		}
	}

	final := states[lat.Top()]
	if len(final) == 0 {
		panic(fmt.Sprintf("No complete path through lattice for input %q; "+
			"lattice construction must guarantee coverage", lat.Text))
	}
	agenda := search.NewAgenda(k, Better)
	for _, hyp := range final {
		agenda.AddCandidate(hyp)
	}
	best := agenda.Sorted()
	retval := make([]*types.Path, len(best))
	for i, cand := range best {
		retval[i] = backtrack(cand.(*Hypothesis))
	}
	return retval
}

// prune keeps at most k hypotheses per trailing-tag context and the best
// `width` contexts overall, ranked by their best hypothesis.
func prune(hyps []*Hypothesis, width, k int) []*Hypothesis {
	if len(hyps) == 0 {
		return nil
	}
	byContext := make(map[uint64][]*Hypothesis, len(hyps))
	var contexts []uint64
	for _, hyp := range hyps {
		if _, exists := byContext[hyp.Context]; !exists {
			contexts = append(contexts, hyp.Context)
		}
		byContext[hyp.Context] = append(byContext[hyp.Context], hyp)
	}
	groups := make([][]*Hypothesis, 0, len(contexts))
	for _, ctx := range contexts {
		agenda := search.NewAgenda(k, Better)
		for _, hyp := range byContext[ctx] {
			agenda.AddCandidate(hyp)
		}
		group := make([]*Hypothesis, 0, k)
		for _, cand := range agenda.Sorted() {
			group = append(group, cand.(*Hypothesis))
		}
		groups = append(groups, group)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return Better(groups[i][0], groups[j][0])
	})
	if len(groups) > width {
		groups = groups[:width]
	}
	retval := make([]*Hypothesis, 0, len(groups)*k)
	for _, group := range groups {
		retval = append(retval, group...)
	}
	return retval
}

func backtrack(hyp *Hypothesis) *types.Path {
	path := &types.Path{Score: hyp.Score()}
	var count int
	for h := hyp; h.Edge != nil; h = h.Prev {
		count++
	}
	path.Edges = make([]*types.Edge, count)
	for h := hyp; h.Edge != nil; h = h.Prev {
		count--
		path.Edges[count] = h.Edge
	}
	return path
}
