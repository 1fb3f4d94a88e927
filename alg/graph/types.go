package graph

import "moran/util"

type Vertex interface {
	util.Equaler
	ID() int
}

type Edge interface {
	util.Equaler
	Vertices() []int
	ID() int
}

type DirectedEdge interface {
	Edge
	From() int
	To() int
}

type DirectedGraph interface {
	GetVertices() []int
	GetEdges() []int
	GetDirectedEdge(int) DirectedEdge
	NumberOfVertices() int
	NumberOfEdges() int
}

type BasicVertex int

// BasicDirectedEdge is {id, from, to}; from and to are byte offsets when
// the edge belongs to an analysis lattice.
type BasicDirectedEdge [3]int

var _ Vertex = *new(BasicVertex)
var _ DirectedEdge = BasicDirectedEdge{}

func (b BasicVertex) ID() int {
	return int(b)
}

func (b BasicVertex) Equal(otherEq util.Equaler) bool {
	other := otherEq.(BasicVertex)
	return b == other
}

func (e BasicDirectedEdge) ID() int {
	return e[0]
}

func (e BasicDirectedEdge) From() int {
	return e[1]
}

func (e BasicDirectedEdge) To() int {
	return e[2]
}

func (e BasicDirectedEdge) Vertices() []int {
	return []int{e[1], e[2]}
}

func (e BasicDirectedEdge) Equal(otherEq util.Equaler) bool {
	other := otherEq.(BasicDirectedEdge)
	return e[1] == other[1] && e[2] == other[2]
}
