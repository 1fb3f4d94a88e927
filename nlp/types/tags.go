package types

import "moran/util"

// UnknownTag marks fallback edges for out-of-vocabulary spans.
const UnknownTag = "UNK"

// MaxTagIndex bounds the dense tag vocabulary; the scorer packs tag
// indices into 16-bit slots of its context keys.
const MaxTagIndex = 1<<16 - 1

// BuiltinTags are always present with stable indices; model-defined tags
// are appended after them at load time.
var BuiltinTags = []string{
	"NOUN",
	"VERB",
	"ADJ",
	"ADV",
	"PRON",
	"DET",
	"ADP",
	"NUM",
	"CONJ",
	"PRT",
	"PUNCT",
	"SYM",
	"X",
	UnknownTag,
}

// NewTagSet returns a fresh tag vocabulary seeded with the builtin tags,
// unfrozen so a loader can extend it.
func NewTagSet() *util.EnumSet {
	set := util.NewEnumSet(len(BuiltinTags) + 16)
	for _, tag := range BuiltinTags {
		set.Add(tag)
	}
	return set
}
