package types

import (
	"fmt"
	"strings"
)

// Path is a complete segmentation: an ordered edge sequence covering the
// lattice text start to end with no gaps or overlaps. Score is the
// cumulative log-probability assigned by the disambiguator.
type Path struct {
	Edges []*Edge
	Score float64
}

func (p *Path) Surface() string {
	strs := make([]string, len(p.Edges))
	for i, edge := range p.Edges {
		strs[i] = edge.Morpheme.Surface
	}
	return strings.Join(strs, "")
}

func (p *Path) String() string {
	strs := make([]string, len(p.Edges))
	for i, edge := range p.Edges {
		strs[i] = edge.Morpheme.String()
	}
	return fmt.Sprintf("%s (%.4f)", strings.Join(strs, " "), p.Score)
}

// Analysis is a formatted path: the token records of one segmentation
// and its cumulative log-probability.
type Analysis struct {
	Tokens []AnalyzedToken `json:"tokens"`
	Score  float64         `json:"score"`
}

// Verify checks the contiguity and coverage invariant against the
// analyzed text. A non-nil return is an internal bug, not a user error.
func (p *Path) Verify(text string) error {
	if len(p.Edges) == 0 {
		if len(text) != 0 {
			return fmt.Errorf("empty path for non-empty text %q", text)
		}
		return nil
	}
	if p.Edges[0].From() != 0 {
		return fmt.Errorf("path starts at %d, not 0", p.Edges[0].From())
	}
	for i := 1; i < len(p.Edges); i++ {
		if p.Edges[i].From() != p.Edges[i-1].To() {
			return fmt.Errorf("path discontinuity at edge %d: %d != %d",
				i, p.Edges[i].From(), p.Edges[i-1].To())
		}
	}
	if last := p.Edges[len(p.Edges)-1].To(); last != len(text) {
		return fmt.Errorf("path ends at %d, text ends at %d", last, len(text))
	}
	for _, edge := range p.Edges {
		if text[edge.From():edge.To()] != edge.Morpheme.Surface {
			return fmt.Errorf("edge %v does not match text span %q",
				edge, text[edge.From():edge.To()])
		}
	}
	return nil
}
