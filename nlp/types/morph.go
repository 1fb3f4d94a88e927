package types

import (
	"fmt"

	"moran/util"
)

// Morpheme is a lexicon entry: a surface form with its lemma, tag and base
// log-frequency. Entries are owned by the lexicon, immutable once loaded,
// and shared by reference with lattice edges.
type Morpheme struct {
	Surface string
	Lemma   string
	Tag     string
	TagID   int
	// LogFreq is the log-probability of this entry among the candidates
	// sharing its surface form.
	LogFreq float64
	// AlloGroup names the canonical lemma of an allomorph group, empty
	// when the entry has no surface variants.
	AlloGroup string
}

func (m *Morpheme) String() string {
	return fmt.Sprintf("%s/%s/%s", m.Surface, m.Lemma, m.Tag)
}

func (m *Morpheme) Equal(otherEq util.Equaler) bool {
	other := otherEq.(*Morpheme)
	return m.Surface == other.Surface &&
		m.Lemma == other.Lemma &&
		m.Tag == other.Tag
}

type Morphemes []*Morpheme

func (m Morphemes) Len() int {
	return len(m)
}

func (m Morphemes) Less(i, j int) bool {
	if m[i].Surface != m[j].Surface {
		return m[i].Surface < m[j].Surface
	}
	if m[i].Lemma != m[j].Lemma {
		return m[i].Lemma < m[j].Lemma
	}
	return m[i].Tag < m[j].Tag
}

func (m Morphemes) Swap(i, j int) {
	m[i], m[j] = m[j], m[i]
}

// AnalyzedToken is one morpheme occurrence in a disambiguated path, with
// byte offsets into the analyzed text.
type AnalyzedToken struct {
	Surface string `json:"surface"`
	Lemma   string `json:"lemma"`
	Tag     string `json:"tag"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

func (t AnalyzedToken) String() string {
	return fmt.Sprintf("%s/%s/%s[%d:%d]", t.Surface, t.Lemma, t.Tag, t.Start, t.End)
}
