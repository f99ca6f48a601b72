// Package structure detects sentence-level structural phrases that the
// feature emitter needs but that individual token features cannot express:
// multi-ingredient phrases ("butter or olive oil"), compound-sentence
// splits ("... or 1 teaspoon dried sage"), and example phrases ("such as
// King Edward or Maris Piper").
//
// The original implementation parsed these with NLTK RegexpParser chunk
// grammars. Per the accompanying redesign notes, this package replaces
// those grammars with small finite-state scans over the POS-tagged
// sentence: each detector is a single left-to-right pass that extends a
// candidate span while the current tag matches what the phrase allows,
// closes it at the first disqualifying token, and then applies the same
// acceptance rules the original grammar encoded as chunk-grammar
// post-conditions.
package structure

import (
	"strings"

	"github.com/hilli/ingredientparser/pos"
	"github.com/hilli/ingredientparser/token"
	"github.com/hilli/ingredientparser/units"
)

// Phrase is a contiguous run of token indices identified by one of the
// recognizers below.
type Phrase []int

// Start returns the first index of the phrase.
func (p Phrase) Start() int { return p[0] }

// End returns the last index of the phrase.
func (p Phrase) End() int { return p[len(p)-1] }

// Contains reports whether idx falls within the phrase.
func (p Phrase) Contains(idx int) bool {
	for _, i := range p {
		if i == idx {
			return true
		}
	}
	return false
}

// Features holds the three structural recognizers' output for a sentence,
// computed once and queried per-token by the feature emitter.
type Features struct {
	MIPPhrases      []Phrase
	SentenceSplits  []int
	ExamplePhrases  []Phrase
}

// Analyze runs all three recognizers over a tagged sentence.
func Analyze(tokens []token.Token, tags []pos.Tag) Features {
	return Features{
		MIPPhrases:     detectMIP(tokens, tags),
		SentenceSplits: detectSentenceSplits(tokens, tags),
		ExamplePhrases: detectExamples(tokens, tags),
	}
}

func isNounOrAdj(t pos.Tag) bool { return t == pos.NN || t == pos.NNS || t == pos.JJ }

// detectMIP finds multi-ingredient phrases: one or more noun/adjective
// chunks, joined by a comma and/or a coordinating conjunction, ending in a
// noun. Only phrases joined by "or" are kept, matching the original's
// exclusion of "and"-joined lists (which are usually just multiple
// ingredients, not alternatives).
func detectMIP(tokens []token.Token, tags []pos.Tag) []Phrase {
	var phrases []Phrase
	n := len(tokens)

	for start := 0; start < n; start++ {
		if !isNounOrAdj(tags[start]) {
			continue
		}

		i := start
		for i < n && isNounOrAdj(tags[i]) {
			i++
		}
		// optional comma
		sawComma := false
		if i < n && tokens[i].Text == "," {
			sawComma = true
			i++
			for i < n && isNounOrAdj(tags[i]) {
				i++
			}
		}
		if i >= n || tags[i] != pos.CC {
			continue
		}
		ccIdx := i
		if !strings.EqualFold(tokens[ccIdx].Text, "or") {
			continue
		}
		i++
		for i < n && (tags[i] == pos.DT || isNounOrAdj(tags[i])) {
			i++
		}
		if i == ccIdx+1 {
			// nothing followed the conjunction; no trailing noun, reject.
			continue
		}
		end := i - 1
		if !isNounOrAdj(tags[end]) {
			continue
		}
		_ = sawComma

		indices := make([]int, 0, end-start+1)
		for k := start; k <= end; k++ {
			indices = append(indices, k)
		}

		// Trim leading unit/size tokens, per the original grammar's
		// post-condition.
		for len(indices) > 0 {
			first := indices[0]
			text := strings.ToLower(tokens[first].Text)
			if units.IsUnit(text) || pos.IsSizeAdjective(text) {
				indices = indices[1:]
				continue
			}
			break
		}
		if len(indices) == 0 {
			continue
		}
		if tags[indices[0]] == pos.CC {
			continue
		}

		phrases = append(phrases, Phrase(indices))
		start = end
	}

	return phrases
}

// detectSentenceSplits finds indices that mark the start of a new
// ingredient sentence embedded in a compound sentence, i.e. a
// conjunction followed by a number and then a noun/adjective/unit/size,
// such as "... or 1 teaspoon dried sage". Only "or"-joined splits count.
func detectSentenceSplits(tokens []token.Token, tags []pos.Tag) []int {
	var splits []int
	n := len(tokens)

	for i := 0; i < n; i++ {
		if tags[i] != pos.CC {
			continue
		}
		if !strings.EqualFold(tokens[i].Text, "or") {
			continue
		}
		j := i + 1
		sawNumber := false
		for j < n && tags[j] == pos.CD {
			sawNumber = true
			j++
		}
		if !sawNumber {
			continue
		}
		if j >= n {
			continue
		}
		text := strings.ToLower(tokens[j].Text)
		if isNounOrAdj(tags[j]) || units.IsUnit(text) || pos.IsSizeAdjective(text) {
			splits = append(splits, i)
		}
	}

	return splits
}

// exampleStartIN is the fixed set of prepositions that introduce an
// example phrase on their own ("as", "like", "e.g.").
var exampleStartIN = map[string]bool{"as": true, "like": true, "e.g.": true}

// detectExamples finds phrases introducing specific examples of an
// ingredient, such as "such as King Edward or Maris Piper" or "like
// cheddar".
func detectExamples(tokens []token.Token, tags []pos.Tag) []Phrase {
	var examples []Phrase
	n := len(tokens)

	for i := 0; i < n; i++ {
		startJJIN := tags[i] == pos.JJ && i+1 < n && tags[i+1] == pos.IN
		startIN := tags[i] == pos.IN

		if !startJJIN && !startIN {
			continue
		}

		npStart := i + 1
		if startIN {
			npStart = i + 1
		} else {
			npStart = i + 2
		}
		if npStart >= n {
			continue
		}

		j := npStart
		for j < n && (isNounOrAdj(tags[j]) || tags[j] == pos.CC || tags[j] == pos.DT || tokens[j].Text == ",") {
			j++
		}
		if j == npStart {
			continue
		}
		end := j - 1
		if !isNounOrAdj(tags[end]) {
			continue
		}

		phraseText := strings.ToLower(tokens[i].Text)
		isSuchAs := startJJIN && phraseText == "such" && strings.EqualFold(tokens[i+1].Text, "as")
		isPlainIN := startIN && exampleStartIN[phraseText]

		// A matched phrase is skipped past, as in detectMIP, so example
		// phrases never overlap.
		switch {
		case isSuchAs:
			indices := rangeIndices(i, end)
			examples = append(examples, Phrase(indices))
			i = end
		case isPlainIN:
			indices := rangeIndices(i, end)
			examples = append(examples, Phrase(indices))
			i = end
		case startJJIN:
			// JJ+IN pair that isn't "such as": check if the IN alone
			// qualifies, dropping the leading JJ.
			if exampleStartIN[strings.ToLower(tokens[i+1].Text)] {
				indices := rangeIndices(i+1, end)
				examples = append(examples, Phrase(indices))
				i = end
			}
		}
	}

	return examples
}

func rangeIndices(start, end int) []int {
	indices := make([]int, 0, end-start+1)
	for k := start; k <= end; k++ {
		indices = append(indices, k)
	}
	return indices
}

// TokenFeatures returns the boolean structural features for the token at
// index, keyed with prefix exactly as the feature emitter expects:
// "mip_start", "mip_end", "after_sentence_split", "example_phrase".
func (f Features) TokenFeatures(index int, prefix string) map[string]bool {
	features := make(map[string]bool)

	for _, phrase := range f.MIPPhrases {
		if !phrase.Contains(index) {
			continue
		}
		if index == phrase.Start() {
			features[prefix+"mip_start"] = true
		}
		if index == phrase.End() {
			features[prefix+"mip_end"] = true
		}
	}

	for _, split := range f.SentenceSplits {
		if index > split {
			features[prefix+"after_sentence_split"] = true
		}
	}

	for _, phrase := range f.ExamplePhrases {
		if phrase.Contains(index) {
			features[prefix+"example_phrase"] = true
		}
	}

	return features
}
