package postprocess

import (
	"strings"

	"github.com/hilli/ingredientparser/token"
	"github.com/hilli/ingredientparser/units"
)

// endUnits are the closed set of container words that terminate a
// sizable-unit pattern match ("1 28 ounce can").
var endUnits = map[string]bool{
	"bag": true, "block": true, "bottle": true, "box": true, "bucket": true,
	"can": true, "container": true, "envelope": true, "jar": true,
	"loaf": true, "package": true, "packet": true, "piece": true,
	"sachet": true, "slice": true, "tin": true,
}

// approximateTokens precede a QTY token to mark it Approximate.
var approximateTokens = map[string]bool{
	"about": true, "approx": true, "approx.": true, "approximately": true,
	"nearly": true, "roughly": true,
}

// singularTokens follow a UNIT token, optionally through a closing
// bracket, to mark it Singular.
var singularTokens = map[string]bool{"each": true, "both": true}

// preparedPhrases are fixed two-token phrases that, preceding a QTY
// (optionally through an Approximate token), mark the amount
// PreparedIngredient.
var preparedPhrases = [][2]string{{"to", "yield"}, {"to", "make"}}

// seq is a compacted view of the unconsumed tokens: texts, labels and
// marginals index in lockstep, and orig maps each position back to its
// token index in the full sentence. Each extraction phase operates on a
// fresh compaction so that tokens consumed by an earlier phase never
// interrupt a later phase's pattern adjacency.
type seq struct {
	texts []string
	labs  []token.Label
	margs []float64
	orig  []int
}

func compact(texts []string, labs []token.Label, margs []float64, orig []int, consumed map[int]bool) seq {
	var s seq
	for i := range texts {
		if consumed[orig[i]] {
			continue
		}
		s.texts = append(s.texts, texts[i])
		s.labs = append(s.labs, labs[i])
		s.margs = append(s.margs, margs[i])
		s.orig = append(s.orig, orig[i])
	}
	return s
}

// ExtractAmounts runs §4.5(b): sizable-unit, composite, and fallback
// patterns in order over the (already QTY-normalized) token sequence.
// consumed marks, by original token index, every token absorbed into an
// amount or one of its helper words ("about", "each", "to yield").
func ExtractAmounts(tokens []token.Token, labels []token.Label, marginals []float64, opts Options) (amounts []IngredientAmount, composites []CompositeIngredientAmount, consumed map[int]bool) {
	texts, labs, margs, orig := normalizeQTYTokens(tokens, labels, marginals)
	consumed = map[int]bool{}

	amounts = append(amounts, sizableUnitPattern(compact(texts, labs, margs, orig, consumed), consumed, opts)...)
	composites = append(composites, compositeAmountPattern(compact(texts, labs, margs, orig, consumed), consumed, opts)...)
	amounts = append(amounts, fallbackPattern(compact(texts, labs, margs, orig, consumed), consumed, opts)...)

	return amounts, composites, consumed
}

// matchPattern finds non-overlapping occurrences of a label pattern,
// returning for each match the positions (in s) of the matched labels.
// skippable, if non-nil, names labels that are transparent to the match:
// positions carrying them are passed over, so the matched positions need
// not be consecutive.
func matchPattern(s seq, pattern []token.Label, skippable func(token.Label) bool) [][]int {
	var positions []int
	for i, l := range s.labs {
		if skippable != nil && skippable(l) {
			continue
		}
		positions = append(positions, i)
	}

	if len(pattern) > len(positions) {
		return nil
	}

	var matches [][]int
	for i := 0; i+len(pattern) <= len(positions); {
		ok := true
		for j, want := range pattern {
			if s.labs[positions[i+j]] != want {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, positions[i:i+len(pattern)])
			i += len(pattern)
			continue
		}
		i++
	}
	return matches
}

// sizableUnitPatterns, longest first: a quantity-unit pair split by one
// or more quantity-unit pairs ("1 28 ounce can", "2 17.3 oz (484g)
// package").
var sizableUnitPatterns = [][]token.Label{
	{token.QTY, token.QTY, token.UNIT, token.QTY, token.UNIT, token.QTY, token.UNIT, token.UNIT},
	{token.QTY, token.QTY, token.UNIT, token.QTY, token.UNIT, token.UNIT},
	{token.QTY, token.QTY, token.UNIT, token.UNIT},
}

// sizableUnitPattern matches QTY QTY UNIT (QTY UNIT)* UNIT where the
// final UNIT is a container word. The first amount pairs the first QTY
// with the final UNIT; each interior (QTY, UNIT) pair becomes a
// Singular amount describing one container's contents.
func sizableUnitPattern(s seq, consumed map[int]bool, opts Options) []IngredientAmount {
	var out []IngredientAmount

	for _, pattern := range sizableUnitPatterns {
		for _, match := range matchPattern(s, pattern, func(l token.Label) bool {
			return l != token.QTY && l != token.UNIT
		}) {
			last := match[len(match)-1]
			if !endUnits[units.Singularize(strings.ToLower(s.texts[last]))] {
				continue
			}
			alreadyUsed := false
			for _, m := range match {
				if consumed[s.orig[m]] {
					alreadyUsed = true
					break
				}
			}
			if alreadyUsed {
				continue
			}

			first := match[0]
			approx := isApproximate(s, first, consumed)

			firstAmount := makeAmount(s.texts[first], s.texts[last],
				mean([]float64{s.margs[first], s.margs[last]}), s.orig[first], opts, 0)
			if approx {
				firstAmount.Flags |= Approximate
			}
			out = append(out, firstAmount)

			inner := match[1 : len(match)-1]
			for i := 0; i+1 < len(inner); i += 2 {
				q, u := inner[i], inner[i+1]
				flags := Singular
				if approx {
					flags |= Approximate
				}
				amt := makeAmount(s.texts[q], s.texts[u], s.margs[q], s.orig[q], opts, flags)
				out = append(out, amt)
			}

			for _, m := range match {
				consumed[s.orig[m]] = true
			}
		}
	}

	return out
}

// compositePattern describes one named composite-amount shape: a label
// sequence matched contiguously, the conjunction token required at
// conjIndex (or unit constraints for the conjunction-less lb-oz and
// pt-fl-oz shapes), the positions of the two member amounts, and the
// join text.
type compositePattern struct {
	labels      []token.Label
	conjunction string
	conjIndex   int
	start1      int
	start2      int
	join        string
	subtractive bool
}

var compositePatterns = []compositePattern{
	// "1 pint 2 fl oz"
	{labels: []token.Label{token.QTY, token.UNIT, token.QTY, token.UNIT, token.UNIT}, conjIndex: -1, start1: 0, start2: 2, join: ""},
	// "1 lb 2 oz"
	{labels: []token.Label{token.QTY, token.UNIT, token.QTY, token.UNIT}, conjIndex: -1, start1: 0, start2: 2, join: ""},
	// "1 cup plus 1 tablespoon"
	{labels: []token.Label{token.QTY, token.UNIT, token.COMMENT, token.QTY, token.UNIT}, conjunction: "plus", conjIndex: 2, start1: 0, start2: 3, join: " plus "},
	// "1 cup + 1 tablespoon"
	{labels: []token.Label{token.QTY, token.UNIT, token.PUNC, token.QTY, token.UNIT}, conjunction: "+", conjIndex: 2, start1: 0, start2: 3, join: " + "},
	// "1 cup, plus 1 tablespoon"
	{labels: []token.Label{token.QTY, token.UNIT, token.PUNC, token.COMMENT, token.QTY, token.UNIT}, conjunction: "plus", conjIndex: 3, start1: 0, start2: 4, join: " plus "},
	// "1 cup and 1 tablespoon"
	{labels: []token.Label{token.QTY, token.UNIT, token.COMMENT, token.QTY, token.UNIT}, conjunction: "and", conjIndex: 2, start1: 0, start2: 3, join: " and "},
	// "1 cup minus 1 tablespoon"
	{labels: []token.Label{token.QTY, token.UNIT, token.COMMENT, token.QTY, token.UNIT}, conjunction: "minus", conjIndex: 2, start1: 0, start2: 3, join: " minus ", subtractive: true},
	// "1 cup less 1 tablespoon"
	{labels: []token.Label{token.QTY, token.UNIT, token.COMMENT, token.QTY, token.UNIT}, conjunction: "less", conjIndex: 2, start1: 0, start2: 3, join: " minus ", subtractive: true},
}

// validFirstUnits and validLastUnits constrain the conjunction-less
// composite shapes to the lb-oz and pt-fl-oz unit families.
var validFirstUnits = map[string]bool{"lb": true, "pound": true, "pt": true, "pint": true}
var validLastUnits = map[string]bool{"oz": true, "ounce": true}

// compositeAmountPattern matches adjacent amounts that describe a single
// total quantity ("1 lb 2 oz", "1/2 cup plus 1 tablespoon").
func compositeAmountPattern(s seq, consumed map[int]bool, opts Options) []CompositeIngredientAmount {
	var out []CompositeIngredientAmount

	for _, p := range compositePatterns {
		// An ingredient name repeated inside a composite amount ("1/2 cup
		// sugar plus 1 1/2 tablespoons sugar") must not break the match,
		// so NAME-labeled tokens are transparent here. Everything else
		// must be adjacent.
		for _, match := range matchPattern(s, p.labels, func(l token.Label) bool {
			return l.IsName()
		}) {
			alreadyUsed := false
			for _, m := range match {
				if consumed[s.orig[m]] {
					alreadyUsed = true
					break
				}
			}
			if alreadyUsed {
				continue
			}

			last := match[len(match)-1]
			if p.conjIndex < 0 {
				firstUnit := strings.ToLower(s.texts[match[p.start1+1]])
				lastUnit := strings.ToLower(s.texts[last])
				if !validFirstUnits[firstUnit] || !validLastUnits[lastUnit] {
					continue
				}
			} else if !strings.EqualFold(s.texts[match[p.conjIndex]], p.conjunction) {
				continue
			}

			i := match[p.start1]
			var extraFlags Flag
			leadingSingularApprox := isSingularAndApproximate(s, i, consumed)
			approx := leadingSingularApprox || isApproximate(s, i, consumed)
			singular := leadingSingularApprox || isSingular(s, last, consumed)
			if approx {
				extraFlags |= Approximate
			}
			if singular {
				extraFlags |= Singular
			}

			first := makeAmount(s.texts[match[p.start1]], s.texts[match[p.start1+1]],
				meanRange(s.margs, match[p.start1:p.start1+2]), s.orig[match[p.start1]], opts, extraFlags)

			var unit2Parts []string
			for _, m := range match[p.start2+1:] {
				unit2Parts = append(unit2Parts, s.texts[m])
			}
			second := makeAmount(s.texts[match[p.start2]], strings.Join(unit2Parts, " "),
				meanRange(s.margs, match[p.start2:]), s.orig[match[p.start2]], opts, extraFlags)

			composite := CompositeIngredientAmount{
				Amounts:     []IngredientAmount{first, second},
				Join:        p.join,
				Subtractive: p.subtractive,
			}
			composite.Text = first.Text + joinTextOrSpace(p.join) + second.Text
			composite.Confidence = mean([]float64{first.Confidence, second.Confidence})
			composite.StartingIndex = first.StartingIndex

			out = append(out, composite)
			for _, m := range match {
				consumed[s.orig[m]] = true
			}
		}
	}

	return out
}

func joinTextOrSpace(join string) string {
	if join == "" {
		return " "
	}
	return join
}

func meanRange(margs []float64, positions []int) float64 {
	var values []float64
	for _, p := range positions {
		values = append(values, margs[p])
	}
	return mean(values)
}

// fallbackPattern implements §4.5(b).3: a QTY token starts a new amount
// and subsequent UNIT tokens extend it until the next QTY; a UNIT seen
// before any QTY starts a new, quantity-less amount; "dozen" following a
// QTY is appended to that amount's quantity.
func fallbackPattern(s seq, consumed map[int]bool, opts Options) []IngredientAmount {
	type partial struct {
		quantity      string
		unitParts     []string
		confidences   []float64
		startingIndex int
		flags         Flag
	}
	var partials []*partial

	for i := range s.texts {
		switch s.labs[i] {
		case token.QTY:
			if strings.EqualFold(s.texts[i], "dozen") && i > 0 && s.labs[i-1] == token.QTY && len(partials) > 0 {
				last := partials[len(partials)-1]
				last.quantity += " dozen"
				last.confidences = append(last.confidences, s.margs[i])
				consumed[s.orig[i]] = true
				break
			}
			p := &partial{
				quantity:      s.texts[i],
				confidences:   []float64{s.margs[i]},
				startingIndex: s.orig[i],
			}
			if i > 0 && (s.texts[i-1] == "(" || s.texts[i-1] == "/" || s.texts[i-1] == "[") {
				p.flags |= RelatedToPrevious
			}
			partials = append(partials, p)
			consumed[s.orig[i]] = true

		case token.UNIT:
			if strings.EqualFold(s.texts[i], "dozen") && len(partials) > 0 && partials[len(partials)-1].quantity != "" {
				last := partials[len(partials)-1]
				last.quantity += " dozen"
				last.confidences = append(last.confidences, s.margs[i])
				consumed[s.orig[i]] = true
				break
			}
			if len(partials) == 0 {
				partials = append(partials, &partial{
					confidences:   []float64{},
					startingIndex: s.orig[i],
				})
			}
			last := partials[len(partials)-1]
			last.unitParts = append(last.unitParts, s.texts[i])
			last.confidences = append(last.confidences, s.margs[i])
			consumed[s.orig[i]] = true
		}

		if len(partials) > 0 {
			last := partials[len(partials)-1]
			if isApproximate(s, i, consumed) {
				last.flags |= Approximate
			}
			if isSingular(s, i, consumed) {
				last.flags |= Singular
			}
			if isSingularAndApproximate(s, i, consumed) {
				last.flags |= Approximate | Singular
			}
			if isPrepared(s, i, consumed) {
				last.flags |= PreparedIngredient
			}
		}
	}

	var out []IngredientAmount
	for _, p := range partials {
		amt := makeAmount(p.quantity, strings.Join(p.unitParts, " "), mean(p.confidences), p.startingIndex, opts, p.flags)
		out = append(out, amt)
	}
	return out
}

// isApproximate reports whether position i is a QTY preceded by an
// approximate word ("about 3 cups"), consuming the helper token. The
// tokenizer splits "approx." into "approx" and ".", so a lone "."
// between the helper and the quantity is looked through.
func isApproximate(s seq, i int, consumed map[int]bool) bool {
	if i == 0 || s.labs[i] != token.QTY {
		return false
	}
	if approximateTokens[strings.ToLower(s.texts[i-1])] {
		consumed[s.orig[i-1]] = true
		return true
	}
	if i > 1 && s.texts[i-1] == "." && approximateTokens[strings.ToLower(s.texts[i-2])] {
		consumed[s.orig[i-1]] = true
		consumed[s.orig[i-2]] = true
		return true
	}
	return false
}

// isSingular reports whether position i is a UNIT followed by "each" or
// "both", optionally through a closing bracket, consuming the helper.
func isSingular(s seq, i int, consumed map[int]bool) bool {
	if s.labs[i] != token.UNIT || i == len(s.texts)-1 {
		return false
	}
	if singularTokens[strings.ToLower(s.texts[i+1])] {
		consumed[s.orig[i+1]] = true
		return true
	}
	if i >= len(s.texts)-2 {
		return false
	}
	if (s.texts[i+1] == ")" || s.texts[i+1] == "]") && singularTokens[strings.ToLower(s.texts[i+2])] {
		consumed[s.orig[i+2]] = true
		return true
	}
	return false
}

// isSingularAndApproximate matches a two-token leading phrase like
// "each about" immediately before a QTY, consuming both helpers.
func isSingularAndApproximate(s seq, i int, consumed map[int]bool) bool {
	if i < 2 || s.labs[i] != token.QTY {
		return false
	}
	if approximateTokens[strings.ToLower(s.texts[i-1])] && singularTokens[strings.ToLower(s.texts[i-2])] {
		consumed[s.orig[i-1]] = true
		consumed[s.orig[i-2]] = true
		return true
	}
	return false
}

// isPrepared reports whether position i is a QTY preceded by one of the
// fixed two-token prepared phrases ("to yield 2 cups"), optionally
// through an approximate token, consuming the phrase tokens.
func isPrepared(s seq, i int, consumed map[int]bool) bool {
	if i < 2 || s.labs[i] != token.QTY {
		return false
	}
	for _, phrase := range preparedPhrases {
		if strings.EqualFold(s.texts[i-2], phrase[0]) && strings.EqualFold(s.texts[i-1], phrase[1]) {
			consumed[s.orig[i-1]] = true
			consumed[s.orig[i-2]] = true
			return true
		}
		if i > 2 && approximateTokens[strings.ToLower(s.texts[i-1])] &&
			strings.EqualFold(s.texts[i-3], phrase[0]) && strings.EqualFold(s.texts[i-2], phrase[1]) {
			consumed[s.orig[i-2]] = true
			consumed[s.orig[i-3]] = true
			return true
		}
	}
	return false
}

// distributeRelatedFlags groups amounts, in sentence order, by the
// RelatedToPrevious flag set on an amount opened right after '(', '/',
// or '[' in the fallback pattern: each such amount joins the group of
// the nearest preceding amount. Approximate, Singular, and
// PreparedIngredient are then OR-ed across every amount in a group, so
// "about 2 lb / 1 kg" marks both amounts Approximate even though only
// the pound amount carries the flag directly.
func distributeRelatedFlags(amounts []IngredientAmount) {
	const distributed = Approximate | Singular | PreparedIngredient

	groupStart := 0
	for i := 1; i <= len(amounts); i++ {
		if i < len(amounts) && amounts[i].Flags.Has(RelatedToPrevious) {
			continue
		}

		group := amounts[groupStart:i]
		var flags Flag
		for _, a := range group {
			flags |= a.Flags & distributed
		}
		for j := range group {
			group[j].Flags |= flags
		}

		groupStart = i
	}
}

// makeAmount resolves a raw quantity/unit text pair into a final
// IngredientAmount: the quantity becomes a decimal, range, or raw
// string; the unit becomes a canonical identifier when recognized (and
// canonical units are requested), or a surface string pluralized to
// agree with the quantity otherwise.
func makeAmount(qtyText, unitText string, confidence float64, startIdx int, opts Options, extraFlags Flag) IngredientAmount {
	qty, qtyFlags := resolveQuantity(qtyText)
	flags := qtyFlags | extraFlags

	surface := surfaceUnit(unitText, qty)
	unit := surface
	if !opts.StringUnits {
		if u, ok := units.Lookup(unitText); ok && u.System != "" {
			unit = u.Singular
		}
	}

	text := strings.TrimSpace(formatQuantityText(qty) + " " + surface)

	return IngredientAmount{
		Quantity:      qty,
		Unit:          unit,
		Text:          text,
		Confidence:    confidence,
		StartingIndex: startIdx,
		Flags:         flags,
	}
}

// surfaceUnit pluralizes a recognized unit's surface form when the
// quantity is a scalar other than 1; ranges and raw-string quantities
// keep the form they were written with.
func surfaceUnit(unitText string, q Quantity) string {
	if q.Kind == QuantityScalar && q.Value != 1 {
		return units.Pluralize(unitText)
	}
	return unitText
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
