package postprocess

import (
	"sort"
	"strings"

	"github.com/hilli/ingredientparser/normalize"
	"github.com/hilli/ingredientparser/token"
	"github.com/hilli/ingredientparser/units"
)

// Options controls optional post-processing behavior; see spec.md §6.
type Options struct {
	DiscardIsolatedStopWords bool
	ExpectNameInOutput       bool
	StringUnits              bool
	SeparateNames            bool
	// VolumetricUnitsSystem selects the us_customary or imperial
	// definitions for cup/pint/quart/gallon/fluid ounce when converting
	// a recognized volumetric unit. The zero value leaves amounts in
	// whatever system the sentence itself expressed.
	VolumetricUnitsSystem units.System
	// FoundationFoods, if true, asks the caller's Parser to resolve each
	// parsed name against its foundation-food catalog (§4.6). Process
	// itself never performs resolution: it has no catalog or embeddings
	// to work with. The Parser checks this flag and calls its resolver
	// after Process returns.
	FoundationFoods bool
	// StripPriceAnnotations removes trailing "(, $N.NN)"-style price text
	// before normalization proceeds. The reference implementation carries
	// this logic in its test helpers but never wires it into the
	// pipeline; here it is a real, opt-in step (default false, matching
	// that original behavior) applied by Parser.Parse before Normalize's
	// other rewrite steps.
	StripPriceAnnotations bool
	// Trace, if non-nil, is called after every normalization stage with
	// the stage name and the sentence as it stands after that stage: a
	// plain, explicit substitute for the reference implementation's
	// show_debug_output flag.
	Trace normalize.Trace
}

// DefaultOptions matches the documented defaults: discard isolated stop
// words, canonical unit identifiers, and one joined name.
var DefaultOptions = Options{DiscardIsolatedStopWords: true}

// stopWords is the closed set of tokens considered "isolated stop words"
// for the discard_isolated_stop_words option.
var stopWords = map[string]bool{
	"of": true, "a": true, "an": true, "the": true, "and": true, "or": true,
	"with": true, "for": true, "to": true, "in": true, "on": true, "by": true,
}

// Process converts labeled tokens into a ParsedIngredient.
func Process(sentence string, tokens []token.Token, labels []token.Label, marginals []float64, opts Options) ParsedIngredient {
	for _, l := range labels {
		if !l.Valid() {
			panic("postprocess: label outside fixed label set: " + string(l))
		}
	}

	amounts, composites, consumed := ExtractAmounts(tokens, labels, marginals, opts)
	restorePlurals(tokens, labels)

	sort.SliceStable(amounts, func(i, j int) bool { return amounts[i].StartingIndex < amounts[j].StartingIndex })
	sort.SliceStable(composites, func(i, j int) bool { return composites[i].StartingIndex < composites[j].StartingIndex })
	distributeRelatedFlags(amounts)

	names := extractNames(tokens, labels, marginals, consumed, opts)
	size := extractTextField(tokens, labels, marginals, consumed, token.SIZE, opts)
	prep := extractTextField(tokens, labels, marginals, consumed, token.PREP, opts)
	comment := extractTextField(tokens, labels, marginals, consumed, token.COMMENT, opts)
	purpose := extractTextField(tokens, labels, marginals, consumed, token.PURPOSE, opts)

	if opts.ExpectNameInOutput && len(names) == 0 {
		names = bestEffortNameGuess(tokens, labels, consumed)
	}

	propagatePreparedIngredient(amounts, names, prep)

	if opts.VolumetricUnitsSystem != "" {
		convertVolumetricSystem(amounts, composites, opts.VolumetricUnitsSystem)
	}

	return ParsedIngredient{
		Names:            names,
		Size:             size,
		Amounts:          amounts,
		CompositeAmounts: composites,
		Preparation:      prep,
		Comment:          comment,
		Purpose:          purpose,
		Sentence:         sentence,
	}
}

// restorePlurals restores the plural surface form of any token that was
// singularized during tokenization but whose final label is not UNIT.
func restorePlurals(tokens []token.Token, labels []token.Label) {
	for i := range tokens {
		if tokens[i].Flags.Has(token.FlagSingularized) && labels[i] != token.UNIT {
			tokens[i].Text = units.Pluralize(tokens[i].Text)
		}
	}
}

// extractNames builds the ingredient name(s). With SeparateNames set,
// the NAME sub-grammar is applied: tokens are grouped by sub-label, the
// groups composed into one candidate name per alternative, and each
// rendered independently. Otherwise all NAME-sublabeled tokens are
// treated as a single field and rendered as one entry.
func extractNames(tokens []token.Token, labels []token.Label, marginals []float64, consumed map[int]bool, opts Options) []IngredientText {
	nameIdx := unconsumedIndices(labels, consumed, func(l token.Label) bool { return l.IsName() || l == token.PUNC })
	if allPunc(nameIdx, labels) {
		return nil
	}

	if !opts.SeparateNames {
		text := buildFieldText(nameIdx, tokens, labels, marginals, consumed, " ", opts)
		if text == nil {
			return nil
		}
		return []IngredientText{*text}
	}

	groups := groupNameLabels(nameIdx, labels)
	constructed := composeNames(groups, labels)

	var names []IngredientText
	for _, idxGroup := range constructed {
		text := buildFieldText(idxGroup, tokens, labels, marginals, consumed, " ", opts)
		if text == nil {
			continue
		}
		names = append(names, *text)
	}
	return dedupeNames(names)
}

// dedupeNames removes duplicate Text values, keeping the first (and thus
// earliest-in-sentence) occurrence of each: composite-amount sentences
// routinely repeat the same ingredient name ("1/2 cup sugar plus ...
// sugar").
func dedupeNames(names []IngredientText) []IngredientText {
	seen := map[string]bool{}
	var out []IngredientText
	for _, n := range names {
		if seen[n.Text] {
			continue
		}
		seen[n.Text] = true
		out = append(out, n)
	}
	return out
}

// bestEffortNameGuess is the expect_name_in_output fallback: when no
// NAME-labeled run survives, the first unconsumed, non-punctuation token
// is used as a last-resort name guess.
func bestEffortNameGuess(tokens []token.Token, labels []token.Label, consumed map[int]bool) []IngredientText {
	for i, t := range tokens {
		if consumed[i] || labels[i] == token.PUNC {
			continue
		}
		return []IngredientText{{Text: t.Text, Confidence: 0, StartingIndex: i}}
	}
	return nil
}

func extractTextField(tokens []token.Token, labels []token.Label, marginals []float64, consumed map[int]bool, label token.Label, opts Options) *IngredientText {
	idx := unconsumedIndices(labels, consumed, func(l token.Label) bool { return l == label || l == token.PUNC })
	if allPunc(idx, labels) {
		return nil
	}
	return buildFieldText(idx, tokens, labels, marginals, consumed, ", ", opts)
}

// buildFieldText renders the token indices of one field into an
// IngredientText: consecutive indices form parts, each part is cleaned
// of invalid punctuation, all-PUNC and isolated-stop-word parts are
// skipped, adjacent duplicate parts are collapsed, and the surviving
// parts are joined with sep. Tokens used are marked consumed so later
// fields can't reuse shared PUNC tokens.
func buildFieldText(idx []int, tokens []token.Token, labels []token.Label, marginals []float64, consumed map[int]bool, sep string, opts Options) *IngredientText {
	var parts []string
	var partConfidences []float64
	startingIndex := -1

	for _, group := range consecutiveGroups(idx) {
		group = removeInvalidIndices(group, tokens)
		if allPunc(group, labels) {
			continue
		}

		texts := make([]string, 0, len(group))
		for _, i := range group {
			texts = append(texts, renderToken(tokens[i].Text))
		}
		joined := strings.Join(texts, " ")

		if opts.DiscardIsolatedStopWords && stopWords[strings.ToLower(joined)] {
			continue
		}

		for _, i := range group {
			consumed[i] = true
		}
		parts = append(parts, joined)
		partConfidences = append(partConfidences, meanMarginal(group, marginals))
		if startingIndex < 0 || group[0] < startingIndex {
			startingIndex = group[0]
		}
	}

	if len(parts) == 0 {
		return nil
	}

	parts, partConfidences = removeAdjacentDuplicates(parts, partConfidences)
	text := fixPunctuation(strings.Join(parts, sep))

	return &IngredientText{
		Text:          text,
		Confidence:    mean(partConfidences),
		StartingIndex: startingIndex,
	}
}

func unconsumedIndices(labels []token.Label, consumed map[int]bool, include func(token.Label) bool) []int {
	var idx []int
	for i, l := range labels {
		if !consumed[i] && include(l) {
			idx = append(idx, i)
		}
	}
	return idx
}

func allPunc(idx []int, labels []token.Label) bool {
	if len(idx) == 0 {
		return true
	}
	for _, i := range idx {
		if labels[i] != token.PUNC {
			return false
		}
	}
	return true
}

// consecutiveGroups splits a sorted index list into maximal runs of
// consecutive values.
func consecutiveGroups(idx []int) [][]int {
	var groups [][]int
	var cur []int
	for _, i := range idx {
		if len(cur) > 0 && i != cur[len(cur)-1]+1 {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, i)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// invalidLeading and invalidTrailing are punctuation tokens that cannot
// open or close a phrase.
var invalidLeading = map[string]bool{
	")": true, "]": true, "}": true, ",": true, ":": true, ";": true,
	"-": true, ".": true, "!": true, "?": true, "*": true,
}
var invalidTrailing = map[string]bool{
	"[": true, "(": true, "{": true, ",": true, ":": true, ";": true, "-": true,
}

// removeInvalidIndices strips punctuation that cannot lead or trail a
// phrase, then removes brackets that are not part of a matched pair.
func removeInvalidIndices(idx []int, tokens []token.Token) []int {
	for len(idx) > 1 && invalidLeading[tokens[idx[0]].Text] {
		idx = idx[1:]
	}
	for len(idx) > 1 && invalidTrailing[tokens[idx[len(idx)-1]].Text] {
		idx = idx[:len(idx)-1]
	}

	remove := map[int]bool{}
	stacks := map[string][]int{}
	for pos, i := range idx {
		switch tokens[i].Text {
		case "(", "[":
			stacks[tokens[i].Text] = append(stacks[tokens[i].Text], pos)
		case ")":
			if s := stacks["("]; len(s) > 0 {
				stacks["("] = s[:len(s)-1]
			} else {
				remove[pos] = true
			}
		case "]":
			if s := stacks["["]; len(s) > 0 {
				stacks["["] = s[:len(s)-1]
			} else {
				remove[pos] = true
			}
		}
	}
	for _, s := range stacks {
		for _, pos := range s {
			remove[pos] = true
		}
	}
	if len(remove) == 0 {
		return idx
	}

	out := make([]int, 0, len(idx))
	for pos, i := range idx {
		if !remove[pos] {
			out = append(out, i)
		}
	}
	return out
}

// removeAdjacentDuplicates collapses runs of identical adjacent parts,
// keeping the last of each run.
func removeAdjacentDuplicates(parts []string, confidences []float64) ([]string, []float64) {
	var outParts []string
	var outConf []float64
	for i := range parts {
		if i+1 < len(parts) && parts[i] == parts[i+1] {
			continue
		}
		outParts = append(outParts, parts[i])
		outConf = append(outConf, confidences[i])
	}
	return outParts, outConf
}

// fixPunctuation repairs the spacing artifacts of joining tokens with
// single spaces: no space inside brackets, around slashes, or before
// closing punctuation.
func fixPunctuation(text string) string {
	text = strings.ReplaceAll(text, "( ", "(")
	text = strings.ReplaceAll(text, " )", ")")
	text = strings.ReplaceAll(text, "[ ", "[")
	text = strings.ReplaceAll(text, " ]", "]")
	text = strings.ReplaceAll(text, " / ", "/")
	for _, punc := range []string{",", ":", ";", ".", "!", "?", "*", "'"} {
		text = strings.ReplaceAll(text, " "+punc, punc)
	}
	return strings.TrimSpace(text)
}

// renderToken converts internal fraction sentinel tokens ("1#1$2") back
// to display form ("1 1/2"), and a hyphen range of sentinels
// ("#1$4-#1$2") to its display range ("1/4-1/2").
func renderToken(text string) string {
	if display, ok := normalize.FormatFractionToken(text); ok {
		return display
	}
	if parts := strings.SplitN(text, "-", 2); len(parts) == 2 {
		a, okA := normalize.FormatFractionToken(parts[0])
		b, okB := normalize.FormatFractionToken(parts[1])
		if okA && okB {
			return a + "-" + b
		}
	}
	return text
}

func meanMarginal(idx []int, marginals []float64) float64 {
	var values []float64
	for _, i := range idx {
		values = append(values, marginals[i])
	}
	return mean(values)
}

// propagatePreparedIngredient marks every amount PreparedIngredient if a
// preparation text exists positioned between the amount and any name,
// in either order.
func propagatePreparedIngredient(amounts []IngredientAmount, names []IngredientText, prep *IngredientText) {
	if prep == nil || len(names) == 0 {
		return
	}
	for i := range amounts {
		for _, name := range names {
			amountBeforeName := amounts[i].StartingIndex < prep.StartingIndex && prep.StartingIndex < name.StartingIndex
			nameBeforeAmount := name.StartingIndex < prep.StartingIndex && prep.StartingIndex < amounts[i].StartingIndex
			if amountBeforeName || nameBeforeAmount {
				amounts[i].Flags |= PreparedIngredient
			}
		}
	}
}
