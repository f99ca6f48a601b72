package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hilli/ingredientparser/token"
	"github.com/hilli/ingredientparser/units"
)

// splitPunctuation are the single-character punctuation marks split out
// as independent tokens from within a whitespace-delimited chunk.
const splitPunctuation = `()[]{},"/:;`

// abbreviationDot matches a letter-dot-letter tail, checked against the
// token with its trailing period removed: "e.g." trims to "e.g", which
// matches and so keeps its period; "taste." trims to "taste", which does
// not, and the period splits off as its own token.
var abbreviationDot = regexp.MustCompile(`[A-Za-z]\.[A-Za-z]$`)

// Tokenize splits a normalized sentence into tokens per §4.2: split on
// whitespace, then split out fixed single-character punctuation, then
// split a trailing '.' unless it is protected by an abbreviation pattern.
// Recognized plural units are singularized, and the indices singularized
// are returned so the caller can restore them after labeling if the final
// label isn't UNIT.
func Tokenize(sentence string) (tokens []token.Token, singularized []int) {
	for _, field := range strings.Fields(sentence) {
		for _, piece := range splitChunk(field) {
			if piece == "" {
				continue
			}
			tokens = append(tokens, token.Token{Text: piece, FeatText: piece})
		}
	}

	for i, t := range tokens {
		if units.IsUnit(t.Text) {
			singular := units.Singularize(t.Text)
			if singular != t.Text {
				tokens[i].Text = singular
				tokens[i].FeatText = singular
				tokens[i].Flags |= token.FlagSingularized
				singularized = append(singularized, i)
			}
		}
	}

	return tokens, singularized
}

// splitChunk splits one whitespace-delimited chunk into its constituent
// tokens: fixed punctuation marks become standalone tokens, and a
// trailing '.' not protected by an abbreviation pattern is split off.
func splitChunk(chunk string) []string {
	var pieces []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			pieces = append(pieces, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(chunk)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if strings.ContainsRune(splitPunctuation, r) {
			flush()
			pieces = append(pieces, string(r))
			continue
		}
		cur.WriteRune(r)
	}
	flush()

	if n := len(pieces); n > 0 {
		last := pieces[n-1]
		// The abbreviation pattern is checked against the token with the
		// trailing period already removed: "e.g." trims to "e.g", whose
		// letter-dot-letter tail marks the period as part of an
		// abbreviation rather than sentence punctuation.
		if strings.HasSuffix(last, ".") && !abbreviationDot.MatchString(strings.TrimSuffix(last, ".")) {
			pieces[n-1] = strings.TrimSuffix(last, ".")
			pieces = append(pieces, ".")
		}
	}

	out := pieces[:0:0]
	for _, p := range pieces {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripAccentsTransformer decomposes accented runes and discards the
// combining marks, so "café" becomes "cafe" before word-shape computation.
var stripAccentsTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining diacritical marks, used by the feature
// emitter's word-shape computation ("café" -> "cafe" -> "xxxx").
func StripAccents(s string) string {
	out, _, err := transform.String(stripAccentsTransformer, s)
	if err != nil {
		return s
	}
	return out
}
