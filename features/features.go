// Package features implements the per-token feature emitter (§4.3): for
// each token in a sentence it produces a feature map combining the
// current token's own features with those of its two preceding and two
// following neighbors.
package features

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hilli/ingredientparser/embeddings"
	"github.com/hilli/ingredientparser/normalize"
	"github.com/hilli/ingredientparser/pos"
	"github.com/hilli/ingredientparser/stem"
	"github.com/hilli/ingredientparser/structure"
	"github.com/hilli/ingredientparser/token"
	"github.com/hilli/ingredientparser/units"
)

// dozenLiteral, besides the numeric sentinel itself, is the one fixed
// word treated as numeric for feature purposes.
const dozenLiteral = "dozen"

// Emitter produces feature maps for a tokenized, tagged sentence. An
// Emitter is immutable once constructed, so the same one can be reused
// (and shared across goroutines) for every sentence parsed with a given
// embeddings model.
type Emitter struct {
	embed *embeddings.Model
}

// NewEmitter constructs an Emitter. embed may be nil, in which case
// embedding-vector features are simply omitted.
func NewEmitter(embed *embeddings.Model) *Emitter {
	return &Emitter{embed: embed}
}

// contextToken holds the precomputed per-token features shared across
// every context slot a token appears in (as itself, or as a neighbor of
// an adjacent position).
type contextToken struct {
	stem         string
	tag          pos.Tag
	capitalized  bool
	isUnit       bool
	ambiguous    bool
	isPunct      bool
	inParens     bool
	followsComma bool
	followsPlus  bool
	shape        string
	isNumeric    bool
	featText     string
}

// ambiguousUnits lists unit tokens that are also common English words
// ("c" for cup, "g" for gram) and so need a dedicated flag: the original
// tags them NN specially and flags them as ambiguous so the labeler can
// weigh context rather than trusting the unit lexicon blindly.
var ambiguousUnits = map[string]bool{"c": true, "g": true, "x": true}

// Emit produces one feature map per token in tokens, using tags (one POS
// tag per token, same length) and struct (the sentence-structure
// analysis for the same sentence).
func (e *Emitter) Emit(tokens []token.Token, tags []pos.Tag, struc structure.Features) []map[string]float64 {
	n := len(tokens)
	ctx := make([]contextToken, n)
	for i, t := range tokens {
		ctx[i] = e.buildContext(t, tags[i], i, tokens)
	}

	result := make([]map[string]float64, n)
	for i := 0; i < n; i++ {
		feats := map[string]float64{}
		feats["bias"] = 1

		for _, offset := range []int{-2, -1, 0, 1, 2} {
			idx := i + offset
			prefix := contextPrefix(offset)
			if idx < 0 || idx >= n {
				feats[prefix+"EOS"] = 1
				continue
			}
			e.emitSlot(feats, prefix, ctx[idx], idx, tokens)
			if offset != 0 {
				feats[prefix+"pos_ngram:"+posNgram(tags, i, offset)] = 1
			}
		}

		for k, v := range struc.TokenFeatures(i, "") {
			if v {
				feats[k] = 1
			}
		}

		result[i] = feats
	}

	return result
}

// posNgram joins the POS tags between the current position and a context
// position with "+", ordered from the context token inward, so a
// previous-previous neighbor yields a trigram and immediate neighbors a
// bigram.
func posNgram(tags []pos.Tag, i, offset int) string {
	var parts []string
	if offset < 0 {
		for j := i + offset; j <= i; j++ {
			parts = append(parts, string(tags[j]))
		}
	} else {
		for j := i + offset; j >= i; j-- {
			parts = append(parts, string(tags[j]))
		}
	}
	return strings.Join(parts, "+")
}

func contextPrefix(offset int) string {
	switch {
	case offset == 0:
		return ""
	case offset < 0:
		return strings.Repeat("-1", -offset) + ":"
	default:
		return strings.Repeat("+1", offset) + ":"
	}
}

func (e *Emitter) buildContext(t token.Token, tag pos.Tag, idx int, tokens []token.Token) contextToken {
	text := t.Text
	lower := strings.ToLower(text)

	isNumeric := lower == token.NumericSentinel || isNumericLiteral(lower) || lower == dozenLiteral || normalize.IsFractionToken(lower)

	featText := text
	if isNumeric {
		featText = token.NumericSentinel
	}

	inParens := false
	if idx > 0 {
		for j := idx - 1; j >= 0; j-- {
			if tokens[j].Text == "(" {
				inParens = true
				break
			}
			if tokens[j].Text == ")" {
				break
			}
		}
	}

	followsComma := idx > 0 && tokens[idx-1].Text == ","
	followsPlus := idx > 0 && tokens[idx-1].Text == "+"

	return contextToken{
		stem:         stem.Stem(featText),
		tag:          tag,
		capitalized:  isCapitalized(text),
		isUnit:       units.IsUnit(lower),
		ambiguous:    ambiguousUnits[lower],
		isPunct:      isPunctToken(text),
		inParens:     inParens,
		followsComma: followsComma,
		followsPlus:  followsPlus,
		shape:        wordShape(text),
		isNumeric:    isNumeric,
		featText:     featText,
	}
}

func (e *Emitter) emitSlot(feats map[string]float64, prefix string, c contextToken, idx int, tokens []token.Token) {
	feats[prefix+"stem:"+c.stem] = 1
	if !strings.EqualFold(c.featText, c.stem) {
		feats[prefix+"literal:"+c.featText] = 1
	}

	feats[prefix+"pos:"+string(c.tag)] = 1

	setBool(feats, prefix+"is_capitalized", c.capitalized)
	setBool(feats, prefix+"is_unit", c.isUnit)
	setBool(feats, prefix+"is_ambiguous_unit", c.ambiguous)
	setBool(feats, prefix+"is_punct", c.isPunct)
	setBool(feats, prefix+"is_in_parens", c.inParens)
	setBool(feats, prefix+"follows_comma", c.followsComma)
	setBool(feats, prefix+"follows_plus", c.followsPlus)

	feats[prefix+"shape:"+c.shape] = 1

	if !c.isNumeric {
		text := tokens[idx].Text
		for _, n := range []int{3, 4, 5} {
			if len(text) > n {
				feats[prefix+"prefix"+strconv.Itoa(n)+":"+text[:n]] = 1
				feats[prefix+"suffix"+strconv.Itoa(n)+":"+text[len(text)-n:]] = 1
			}
		}
	}

	if e.embed != nil {
		if vec, ok := e.embed.Vector(strings.ToLower(c.featText)); ok {
			for d := 0; d < 10 && d < len(vec); d++ {
				feats[prefix+"v"+strconv.Itoa(d)] = float64(vec[d])
			}
		}
	}
}

func setBool(feats map[string]float64, key string, v bool) {
	if v {
		feats[key] = 1
	}
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	// ranges "A-B" and multipliers "Nx"
	if strings.HasSuffix(s, "x") {
		if _, err := strconv.ParseFloat(strings.TrimSuffix(s, "x"), 64); err == nil {
			return true
		}
	}
	if parts := strings.SplitN(s, "-", 2); len(parts) == 2 {
		if numericSide(parts[0]) && numericSide(parts[1]) {
			return true
		}
	}
	return false
}

// numericSide reports whether one side of a range token is a decimal or
// an internal fraction sentinel.
func numericSide(s string) bool {
	if normalize.IsFractionToken(s) {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isPunctToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(`(){}[],"/:;.`, r) {
			return false
		}
	}
	return true
}

// wordShape computes the word-shape feature: lowercase runs map to 'x',
// uppercase to 'X', digits to 'd', everything else is unchanged. Accents
// are stripped first so "café" shapes the same as "cafe".
func wordShape(s string) string {
	s = normalize.StripAccents(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteByte('x')
		case r >= 'A' && r <= 'Z':
			b.WriteByte('X')
		case r >= '0' && r <= '9':
			b.WriteByte('d')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
