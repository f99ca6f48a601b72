// Package normalize implements the ordered, deterministic string rewrites
// that turn a raw ingredient sentence into the canonical form the
// tokenizer and feature emitter expect, plus the tokenizer itself.
//
// Ordering of the rewrite steps is load-bearing: reordering them changes
// results, so Normalize applies them in a fixed sequence rather than as a
// configurable pipeline.
package normalize

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/hilli/ingredientparser/units"
)

// Trace receives a human-readable description of a normalization stage's
// output, if non-nil. It stands in for the original pipeline's
// show_debug_output tracing: a plain, explicit hook rather than a global
// logger, exposed to callers as postprocess.Options.Trace.
type Trace func(stage, sentence string)

// Options controls optional normalization behavior.
type Options struct {
	// StripPriceAnnotations removes trailing "(, $N.NN)"-style price
	// annotations before HTML-entity unescaping. Off by default, matching
	// the fact that the helper this is grounded on was never wired into
	// the original pipeline.
	StripPriceAnnotations bool
	Trace                 Trace
}

var priceAnnotationPattern = regexp.MustCompile(`(?i)[,(]?\s*\$\s*\d+(\.\d{1,2})?\s*\)?\s*$`)

var enDash = "–"
var emDash = "—"

// unicodeFractions maps vulgar fraction runes to their ASCII form, each
// prefixed with a space as the original does, so that "½ cup" becomes
// " 1/2 cup" and subsequent steps can treat it uniformly with typed
// fractions.
var unicodeFractions = map[string]string{
	"⅛": " 1/8", "⅜": " 3/8", "⅝": " 5/8", "⅞": " 7/8",
	"⅙": " 1/6", "⅚": " 5/6",
	"⅕": " 1/5", "⅖": " 2/5", "⅗": " 3/5", "⅘": " 4/5",
	"¼": " 1/4", "¾": " 3/4",
	"⅓": " 1/3", "⅔": " 2/3",
	"½": " 1/2",
}

var andFractionPattern = regexp.MustCompile(`(?i)(\d+)\s+and\s+(\d+)/(\d+)`)

// fractionTokenPattern matches "[int ]num/den", used to mark internal
// fraction sentinels. U+2044 is normalized to '/' before this runs.
var fractionTokenPattern = regexp.MustCompile(`(?:(\d+)\s+)?(\d+)/(\d+)`)

var fractionSlash = "⁄"

// unitWordPattern enumerates unit tokens used by the quantity/unit
// separation step. It also carries a few strings that aren't strictly
// units ("in", "mm", "cm", "x") but need the same digit-splitting
// treatment ("5-10mm", "1/2in", "2x"). Longer forms are listed first so
// regex alternation prefers them.
const unitWordPattern = `(?:tablespoons?|teaspoons?|tbsps?|tbs|tsps?|pounds?|ounces?|grams?|kilograms?|gallons?|quarts?|pints?|liters?|litres?|cups?|cloves?|pinches?|dashes?|slices?|cans?|jars?|packages?|bags?|sticks?|sprigs?|bunches?|heads?|pieces?|strips?|stalks?|knobs?|inch(?:es)?|lbs?|kgs?|mm|cm|ml|oz|in|l|c|x)`

// quantityUnitPattern separates a digit from a unit fused onto it,
// optionally through a hyphen ("100g", "2-cup"). The trailing group
// emulates the reference pattern's negative lookahead: the character
// after the unit may be 'x' (to allow "2cmx2cm"), a digit, or anything
// that is not a letter, which keeps the single-letter units 'c' and 'l'
// from matching the start of an ordinary word. Matches can abut, so the
// caller applies this pattern twice.
var quantityUnitPattern = regexp.MustCompile(`(?i)(\d)-?(` + unitWordPattern + `)($|[0-9xX]|[^a-zA-Z0-9])`)
var unitQuantityPattern = regexp.MustCompile(`(?i)\b(` + unitWordPattern + `)(\d)`)
var stringNumberHyphenUnitPattern = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)-(` + unitWordPattern + `)\b`)
var unitHyphenUnitPattern = regexp.MustCompile(`(?i)\b(` + unitWordPattern + `)-(` + unitWordPattern + `)\b`)

// trailingAbbreviationPeriod strips a trailing period from known
// abbreviated units, case-insensitively for the first letter only (so
// "Tbsp." and "tbsp." both match, but the rest of the token's casing is
// preserved).
var trailingAbbreviationPeriod = regexp.MustCompile(`\b([Tt]bsp|[Tt]sp|[Oo]z|[Ll]b|[Gg]al|[Qq]t|[Pp]t|[Kk]g|[Mm]l)\.`)

// stringRangePattern matches a range written out in words: "1 to 2",
// "8.5 to 12", "4 or 5". Either side may be a decimal or an internal
// fraction sentinel. A number starting with zero must be followed by a
// decimal point to qualify, protecting text like "Type 00 or 1 flour".
var stringRangePattern = regexp.MustCompile(`(0\.\d+|[1-9][\d.]*|\d*#\d+\$\d+)\s*-?\s*(?:to|or)\s*-*\s*((?:0\.\d+|[1-9][\d.]*|\d*#\d+\$\d+)-?)`)

// dupeUnitRangePattern matches a range where the unit appears after both
// quantities ("100 g - 200 g", "500 ml to 750 ml"). The quantities and
// units are captured so the rewrite can require the two units to agree.
var dupeUnitRangePattern = regexp.MustCompile(`(?i)([\d.]+|\d*#\d+\$\d+)\s+([a-zA-Z]+)\s*(?:-|to|or)\s*([\d.]+|\d*#\d+\$\d+)\s+([a-zA-Z]+)`)

var dupeUnitRangeParts = regexp.MustCompile(`(?i)^([\d.]+|\d*#\d+\$\d+)\s+([a-zA-Z]+)\s*(?:-|to|or)\s*([\d.]+|\d*#\d+\$\d+)\s+([a-zA-Z]+)$`)

var quantityXPattern = regexp.MustCompile(`\b([\d.]+|\d*#\d+\$\d+)\s+[xX]\b`)

// whitespaceInRangePattern collapses spaced hyphens between numbers
// ("0.5 - 1", "#1$4 - #1$2") into a tight range.
var whitespaceInRangePattern = regexp.MustCompile(`(\d)\s*-\s*([\d#])`)

// Normalize applies the ordered rewrite steps to sentence and returns the
// normalized string.
func Normalize(sentence string, opts Options) string {
	trace := func(stage, s string) {
		if opts.Trace != nil {
			opts.Trace(stage, s)
		}
	}

	s := sentence
	trace("input", s)

	if opts.StripPriceAnnotations {
		s = priceAnnotationPattern.ReplaceAllString(s, "")
		trace("strip_price_annotations", s)
	}

	// 1. en-dash -> '-'; em-dash -> ' - '
	s = strings.ReplaceAll(s, enDash, "-")
	s = strings.ReplaceAll(s, emDash, " - ")
	trace("replace_en_em_dash", s)

	// 2. unescape HTML entities
	s = html.UnescapeString(s)
	trace("replace_html_fractions", s)

	// 3. Unicode vulgar fractions -> ASCII, space-prefixed
	for r, repl := range unicodeFractions {
		s = strings.ReplaceAll(s, r, repl)
	}
	trace("replace_unicode_fractions", s)

	// 4. "N and M/K" -> "N M/K"
	s = andFractionPattern.ReplaceAllString(s, "$1 $2/$3")
	trace("combine_quantities_split_by_and", s)

	// 5. mark fractions with internal sentinel, longest match first
	s = strings.ReplaceAll(s, fractionSlash, "/")
	s = markFractions(s)
	trace("identify_fractions", s)

	// 6. separate quantity and unit; applied twice because fused
	// constructs can abut ("2cmx2cm")
	s = quantityUnitPattern.ReplaceAllString(s, "$1 $2$3")
	s = quantityUnitPattern.ReplaceAllString(s, "$1 $2$3")
	s = unitQuantityPattern.ReplaceAllString(s, "$1 $2")
	s = stringNumberHyphenUnitPattern.ReplaceAllString(s, "$1 $2")
	s = unitHyphenUnitPattern.ReplaceAllString(s, "$1 - $2")
	trace("split_quantity_and_units", s)

	// 7. strip trailing period from abbreviated units
	s = trailingAbbreviationPeriod.ReplaceAllString(s, "$1")
	trace("remove_unit_trailing_period", s)

	// 8. string range "A [to|or] B" -> "A-B"
	s = stringRangePattern.ReplaceAllString(s, "$1-$2")
	trace("replace_string_range", s)

	// 9. collapse duplicate-unit ranges when the two units agree
	s = dupeUnitRangePattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := dupeUnitRangeParts.FindStringSubmatch(m)
		if parts == nil || !sameUnit(parts[2], parts[4]) {
			return m
		}
		return parts[1] + "-" + parts[3] + " " + parts[4]
	})
	trace("replace_dupe_units_ranges", s)

	// 10. merge "N x"/"N X" -> "Nx"
	s = quantityXPattern.ReplaceAllString(s, "${1}x")
	trace("merge_quantity_x", s)

	// 11. collapse whitespace inside ranges
	s = whitespaceInRangePattern.ReplaceAllString(s, "$1-$2")
	trace("collapse_ranges", s)

	return s
}

// markFractions rewrites every "[int ]num/den" occurrence to the internal
// sentinel form "INT#NUM$DEN" or "#NUM$DEN". The pattern's leading integer
// group is greedy, so a leftmost-first scan already prefers the longer,
// integer-qualified form over a bare "num/den" match starting mid-token.
func markFractions(s string) string {
	return fractionTokenPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := fractionTokenPattern.FindStringSubmatch(m)
		intPart, num, den := sub[1], sub[2], sub[3]
		if intPart != "" {
			return intPart + "#" + num + "$" + den
		}
		return "#" + num + "$" + den
	})
}

// sameUnit reports whether two unit surface forms denote the same unit,
// either literally or through the canonical unit table ("g" and "grams"
// agree, "g" and "kg" do not).
func sameUnit(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ua, okA := units.Lookup(a)
	ub, okB := units.Lookup(b)
	return okA && okB && ua == ub
}

// FormatFractionToken converts an internal sentinel fraction token (e.g.
// "1#1$2" or "#1$2") back to its plain display form ("1 1/2" or "1/2").
func FormatFractionToken(tok string) (string, bool) {
	parts := strings.SplitN(tok, "#", 2)
	if len(parts) != 2 {
		return tok, false
	}
	frac := strings.SplitN(parts[1], "$", 2)
	if len(frac) != 2 {
		return tok, false
	}
	if parts[0] != "" {
		if _, err := strconv.Atoi(parts[0]); err != nil {
			return tok, false
		}
	}
	if _, err := strconv.Atoi(frac[0]); err != nil {
		return tok, false
	}
	if _, err := strconv.Atoi(frac[1]); err != nil {
		return tok, false
	}
	if parts[0] == "" {
		return frac[0] + "/" + frac[1], true
	}
	return parts[0] + " " + frac[0] + "/" + frac[1], true
}

// IsFractionToken reports whether tok is an internal sentinel fraction
// token produced by step 5.
func IsFractionToken(tok string) bool {
	_, ok := FormatFractionToken(tok)
	return ok
}
