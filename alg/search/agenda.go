// Package search provides the bounded agenda used to prune beam
// hypotheses: a min-heap of fixed capacity whose root is the worst
// retained candidate, so an incoming candidate either displaces the worst
// or is discarded in O(log B).
package search

import "container/heap"

type Candidate interface {
	Score() float64
}

// Better ranks a strictly above b; it must be a strict weak ordering so
// agenda output is deterministic.
type Better func(a, b Candidate) bool

type Agenda struct {
	Size  int
	Rank  Better
	cands []Candidate
}

var _ heap.Interface = &Agenda{}

func NewAgenda(size int, rank Better) *Agenda {
	if size < 1 {
		panic("Agenda size must be at least 1")
	}
	return &Agenda{
		Size:  size,
		Rank:  rank,
		cands: make([]Candidate, 0, size),
	}
}

func (a *Agenda) Len() int {
	return len(a.cands)
}

func (a *Agenda) Less(i, j int) bool {
	// worst at the root
	return a.Rank(a.cands[j], a.cands[i])
}

func (a *Agenda) Swap(i, j int) {
	a.cands[i], a.cands[j] = a.cands[j], a.cands[i]
}

func (a *Agenda) Push(x interface{}) {
	a.cands = append(a.cands, x.(Candidate))
}

func (a *Agenda) Pop() interface{} {
	n := len(a.cands)
	cand := a.cands[n-1]
	a.cands = a.cands[:n-1]
	return cand
}

func (a *Agenda) Peek() Candidate {
	return a.cands[0]
}

// AddCandidate keeps c only if the agenda has room or c outranks the
// current worst.
func (a *Agenda) AddCandidate(c Candidate) {
	if len(a.cands) < a.Size {
		heap.Push(a, c)
		return
	}
	if !a.Rank(c, a.Peek()) {
		return
	}
	heap.Pop(a)
	heap.Push(a, c)
}

// Sorted drains the agenda, best first.
func (a *Agenda) Sorted() []Candidate {
	retval := make([]Candidate, len(a.cands))
	for i := len(a.cands) - 1; i >= 0; i-- {
		retval[i] = heap.Pop(a).(Candidate)
	}
	return retval
}
