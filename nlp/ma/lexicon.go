package ma

import (
	"sort"
	"sync"
	"unicode/utf8"

	"moran/nlp/types"
	"moran/util"
)

const ESTIMATED_MORPHS_PER_SURFACE = 4

// UnknownLogFreq is the base score of a fallback single-rune edge. It sits
// below any compiled log-frequency (compilation clamps to MinEntryLogFreq)
// so dictionary segmentations dominate unknown spans.
const UnknownLogFreq = -16.0

// Lexicon is the dictionary store: a byte trie from surface forms to their
// candidate morphemes. Built once at analyzer construction, read-only
// afterwards, safe for concurrent lookups without locking.
type Lexicon struct {
	Name string
	Tags *util.EnumSet

	root   *trieNode
	size   int
	maxLen int
}

type trieNode struct {
	children map[byte]*trieNode
	entries  types.Morphemes
}

func NewLexicon(name string, tags *util.EnumSet) *Lexicon {
	if tags == nil {
		tags = types.NewTagSet()
	}
	return &Lexicon{
		Name: name,
		Tags: tags,
		root: &trieNode{},
	}
}

// Add inserts a lexicon entry, resolving its tag to a dense index. Must
// not be called once the lexicon is in use by an analyzer.
func (l *Lexicon) Add(m *types.Morpheme) {
	if len(m.Surface) == 0 {
		panic("Cannot add lexicon entry with empty surface form")
	}
	m.TagID, _ = l.Tags.Add(m.Tag)
	// ids are stored off by one in the scorer's 16-bit context slots
	if m.TagID >= types.MaxTagIndex {
		panic("Tag vocabulary exceeds the dense index limit")
	}
	node := l.root
	for i := 0; i < len(m.Surface); i++ {
		b := m.Surface[i]
		if node.children == nil {
			node.children = make(map[byte]*trieNode, 2)
		}
		child, exists := node.children[b]
		if !exists {
			child = &trieNode{}
			node.children[b] = child
		}
		node = child
	}
	if node.entries == nil {
		node.entries = make(types.Morphemes, 0, ESTIMATED_MORPHS_PER_SURFACE)
	}
	node.entries = append(node.entries, m)
	l.size++
	if len(m.Surface) > l.maxLen {
		l.maxLen = len(m.Surface)
	}
}

func (l *Lexicon) Len() int {
	return l.size
}

func (l *Lexicon) MaxSurfaceLen() int {
	return l.maxLen
}

// Lookup returns all entries whose surface form is a prefix of text at
// pos, over every matching prefix length, shortest first. An empty result
// means the position is out of vocabulary, which is a normal outcome.
func (l *Lexicon) Lookup(text string, pos int) types.Morphemes {
	var retval types.Morphemes
	node := l.root
	for i := pos; i < len(text); i++ {
		if node.children == nil {
			break
		}
		child, exists := node.children[text[i]]
		if !exists {
			break
		}
		node = child
		if len(node.entries) > 0 {
			retval = append(retval, node.entries...)
		}
	}
	return retval
}

// BuildLattice constructs the candidate lattice for text. Every rune-start
// offset is queried against the trie; offsets with no dictionary match are
// covered by a single-rune unknown edge, so the lattice always has a
// complete bottom-to-top path. Empty text yields a degenerate single-node
// lattice.
func (l *Lexicon) BuildLattice(text string) *types.Lattice {
	lat := types.NewLattice(text)
	unknownTag, exists := l.Tags.IndexOf(types.UnknownTag)
	if !exists {
		panic("Tag set is missing the unknown tag")
	}
	for pos := 0; pos < len(text); {
		_, width := utf8.DecodeRuneInString(text[pos:])
		candidates := l.Lookup(text, pos)
		for _, m := range candidates {
			lat.AddEdge(m, pos, pos+len(m.Surface), false)
		}
		if len(candidates) == 0 {
			surface := text[pos : pos+width]
			m := &types.Morpheme{
				Surface: surface,
				Lemma:   surface,
				Tag:     types.UnknownTag,
				TagID:   unknownTag,
				LogFreq: UnknownLogFreq,
			}
			lat.AddEdge(m, pos, pos+width, true)
		}
		pos += width
	}
	return lat
}

// Entries returns all lexicon entries in deterministic order. Used when
// serializing a lexicon back into a model payload.
func (l *Lexicon) Entries() types.Morphemes {
	retval := make(types.Morphemes, 0, l.size)
	var walk func(node *trieNode)
	walk = func(node *trieNode) {
		retval = append(retval, node.entries...)
		keys := make([]int, 0, len(node.children))
		for b := range node.children {
			keys = append(keys, int(b))
		}
		sort.Ints(keys)
		for _, b := range keys {
			walk(node.children[byte(b)])
		}
	}
	walk(l.root)
	return retval
}

// AnalyzeStats aggregates out-of-vocabulary counts over built lattices,
// for reporting by the batch commands.
type AnalyzeStats struct {
	sync.Mutex
	TotalEdges   int
	UnknownEdges int
	UniqUnknown  map[string]int
}

func (s *AnalyzeStats) Init() {
	s.UniqUnknown = make(map[string]int)
}

func (s *AnalyzeStats) AddLattice(lat *types.Lattice) {
	s.Lock()
	defer s.Unlock()
	s.TotalEdges += len(lat.Edges)
	for _, edge := range lat.Edges {
		if edge.Unknown {
			s.UnknownEdges++
			s.UniqUnknown[edge.Morpheme.Surface]++
		}
	}
}
