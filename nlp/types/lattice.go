package types

import (
	"fmt"
	"sort"

	"moran/alg/graph"
)

// Edge is a candidate analysis spanning [From(), To()) of the lattice
// text. It holds a non-owning reference to its lexicon entry; Score is the
// only mutable field, filled by the scorer after construction.
type Edge struct {
	graph.BasicDirectedEdge
	Morpheme *Morpheme
	Score    float64
	Unknown  bool
}

func (e *Edge) String() string {
	return fmt.Sprintf("%d-%d:%v", e.From(), e.To(), e.Morpheme)
}

// Lattice is the per-call analysis graph: nodes are byte offsets into
// Text, edges are candidate morphemes. Edges always go from a lower to a
// higher offset, so the lattice is acyclic by construction.
type Lattice struct {
	Text  string
	Edges []*Edge
	// Next maps a byte offset to the ids of edges starting there.
	Next            map[int][]int
	BottomId, TopId int
}

func NewLattice(text string) *Lattice {
	return &Lattice{
		Text:     text,
		Edges:    make([]*Edge, 0, len(text)),
		Next:     make(map[int][]int, len(text)),
		BottomId: 0,
		TopId:    len(text),
	}
}

func (l *Lattice) AddEdge(m *Morpheme, from, to int, unknown bool) *Edge {
	if to <= from || from < l.BottomId || to > l.TopId {
		panic(fmt.Sprintf("Edge [%d,%d) out of lattice bounds [%d,%d) for %v",
			from, to, l.BottomId, l.TopId, m))
	}
	id := len(l.Edges)
	edge := &Edge{
		BasicDirectedEdge: graph.BasicDirectedEdge{id, from, to},
		Morpheme:          m,
		Unknown:           unknown,
	}
	l.Edges = append(l.Edges, edge)
	l.Next[from] = append(l.Next[from], id)
	return edge
}

// Outgoing returns the edges starting at the given offset in insertion
// order; insertion order is the final tie-break of the disambiguator, so
// it must stay stable.
func (l *Lattice) Outgoing(pos int) []*Edge {
	ids, exists := l.Next[pos]
	if !exists {
		return nil
	}
	retval := make([]*Edge, len(ids))
	for i, id := range ids {
		retval[i] = l.Edges[id]
	}
	return retval
}

func (l *Lattice) Top() int {
	return l.TopId
}

func (l *Lattice) Bottom() int {
	return l.BottomId
}

func (l *Lattice) GetVertices() []int {
	vSet := make(map[int]bool, len(l.Next))
	vSet[l.BottomId] = true
	vSet[l.TopId] = true
	for _, edge := range l.Edges {
		vSet[edge.From()] = true
		vSet[edge.To()] = true
	}
	res := make([]int, 0, len(vSet))
	for k := range vSet {
		res = append(res, k)
	}
	sort.Ints(res)
	return res
}

func (l *Lattice) GetEdges() []int {
	res := make([]int, len(l.Edges))
	for i := range l.Edges {
		res[i] = i
	}
	return res
}

func (l *Lattice) GetDirectedEdge(i int) graph.DirectedEdge {
	return l.Edges[i]
}

func (l *Lattice) NumberOfEdges() int {
	return len(l.Edges)
}

func (l *Lattice) NumberOfVertices() int {
	return len(l.GetVertices())
}

var _ graph.DirectedGraph = &Lattice{}
