// Package pos assigns part-of-speech tags to normalized tokens.
//
// The training pipeline's tagger is an external collaborator (see
// spec.md §1): this package stands in for it with a closed-vocabulary
// lexicon plus a small set of ordered fallback rules, producing the
// reduced Penn-Treebank tag set the feature emitter and structural
// recognizers need: NN, NNS, JJ, CC, IN, CD, DT, VBN, RB, plus SYM for
// punctuation.
package pos

import (
	"strings"

	"github.com/hilli/ingredientparser/token"
)

// Tag is a part-of-speech tag drawn from the closed set this package
// produces.
type Tag string

const (
	NN  Tag = "NN"  // singular or mass noun
	NNS Tag = "NNS" // plural noun
	JJ  Tag = "JJ"  // adjective
	CC  Tag = "CC"  // coordinating conjunction
	IN  Tag = "IN"  // preposition or subordinating conjunction
	CD  Tag = "CD"  // cardinal number
	DT  Tag = "DT"  // determiner
	VBN Tag = "VBN" // past participle / adjectival verb form
	RB  Tag = "RB"  // adverb
	SYM Tag = "SYM" // punctuation or symbol
)

var conjunctions = map[string]Tag{"and": CC, "or": CC, "nor": CC, "&": CC}

var prepositions = map[string]Tag{
	"of": IN, "in": IN, "for": IN, "with": IN, "without": IN,
	"to": IN, "from": IN, "on": IN, "into": IN, "at": IN, "by": IN,
}

var determiners = map[string]Tag{
	"a": DT, "an": DT, "the": DT, "this": DT, "that": DT, "these": DT, "those": DT,
}

var adverbs = map[string]Tag{
	"finely": RB, "roughly": RB, "thinly": RB, "lightly": RB, "very": RB,
	"thickly": RB, "coarsely": RB, "freshly": RB, "approximately": RB, "about": RB,
}

// pastParticiples lists common ingredient-preparation past participles that
// the lexicon tags VBN rather than JJ, matching the distinction the MIP and
// example-phrase recognizers rely on between a preparation verb ("chopped")
// and a plain modifier adjective ("large").
var pastParticiples = map[string]bool{
	"chopped": true, "diced": true, "minced": true, "sliced": true, "grated": true,
	"peeled": true, "crushed": true, "melted": true, "softened": true, "cooked": true,
	"drained": true, "rinsed": true, "toasted": true, "roasted": true, "beaten": true,
	"whipped": true, "packed": true, "sifted": true, "shredded": true, "trimmed": true,
	"seeded": true, "cored": true, "pitted": true, "zested": true, "juiced": true,
	"cubed": true, "halved": true, "quartered": true, "boiled": true, "steamed": true,
	"frozen": true, "thawed": true, "divided": true, "unsalted": true, "salted": true,
}

// sizeAdjectives are the SIZES from the original lexicon: size modifiers
// that the MIP recognizer strips from the start of a multi-ingredient
// phrase and that the foundation-food resolver strips as leading
// adjectives.
var sizeAdjectives = map[string]bool{
	"small": true, "medium": true, "large": true, "extra-large": true,
	"jumbo": true, "big": true, "little": true, "baby": true,
}

// commonAdjectives supplements sizeAdjectives and pastParticiples with
// other frequent ingredient-sentence adjectives, so the lexicon does not
// fall back to the noun default for them.
var commonAdjectives = map[string]bool{
	"fresh": true, "dried": true, "ripe": true, "raw": true, "whole": true,
	"boneless": true, "skinless": true, "lean": true, "extra": true, "plain": true,
	"ground": true, "sweet": true, "bitter": true, "sour": true, "hot": true,
	"cold": true, "warm": true, "firm": true, "soft": true, "ripened": true,
	"organic": true, "fine": true, "coarse": true, "thick": true, "thin": true,
}

// pluralSuffixes is checked in order; the first match determines NNS.
var pluralSuffixes = []string{"ies", "ves", "oes", "ses", "xes", "s"}

// singularExceptions are tokens ending in "s" that are nonetheless
// singular nouns, so the suffix heuristic must not mark them NNS.
var singularExceptions = map[string]bool{
	"molasses": true, "couscous": true, "hummus": true, "asparagus": true,
	"citrus": true, "swiss": true,
}

// TagOf returns the part-of-speech tag for a single surface token.
func TagOf(text string) Tag {
	lower := strings.ToLower(text)

	if isPunctuation(lower) {
		return SYM
	}
	if lower == token.NumericSentinel || isNumeric(lower) {
		return CD
	}
	if strings.HasSuffix(lower, "x") && isNumeric(strings.TrimSuffix(lower, "x")) {
		return CD
	}
	if t, ok := conjunctions[lower]; ok {
		return t
	}
	if t, ok := prepositions[lower]; ok {
		return t
	}
	if t, ok := determiners[lower]; ok {
		return t
	}
	if t, ok := adverbs[lower]; ok {
		return t
	}
	if pastParticiples[lower] {
		return VBN
	}
	if sizeAdjectives[lower] || commonAdjectives[lower] {
		return JJ
	}
	if strings.HasSuffix(lower, "ly") && len(lower) > 3 {
		return RB
	}
	if !singularExceptions[lower] {
		for _, suf := range pluralSuffixes {
			if strings.HasSuffix(lower, suf) && len(lower) > len(suf)+1 {
				return NNS
			}
		}
	}
	return NN
}

// isNumeric reports whether s parses as an integer or decimal number.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' || r == '/' || r == '-' || r == '#' || r == '$':
			// separators, including the internal fraction sentinel marks
		default:
			return false
		}
	}
	return seenDigit
}

func isPunctuation(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(",.;:()[]{}\"'`", r) {
			return false
		}
	}
	return true
}

// IsSizeAdjective reports whether text is one of the fixed SIZE modifier
// tokens, used by §4.6's leading-adjective stripping and by the MIP
// recognizer's phrase-head trimming.
func IsSizeAdjective(text string) bool {
	return sizeAdjectives[strings.ToLower(text)]
}

// TagSentence tags every token in a normalized sentence, returning one Tag
// per input token in order.
func TagSentence(tokens []token.Token) []Tag {
	tags := make([]Tag, len(tokens))
	for i, t := range tokens {
		tags[i] = TagOf(t.Text)
	}
	return tags
}
