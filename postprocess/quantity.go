package postprocess

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hilli/ingredientparser/normalize"
	"github.com/hilli/ingredientparser/token"
)

// stringNumbers is the fixed mapping of spelled-out numbers to digits,
// applied only when the whole QTY token matches, or matches up to a
// trailing "-unit" suffix.
var stringNumbers = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
	"eleven": "11", "twelve": "12",
	"half": "1/2", "quarter": "1/4",
}

// replaceStringNumber replaces tok with its digit form if the whole
// token, or the token up to a trailing "-unit" suffix, matches
// stringNumbers.
func replaceStringNumber(tok string) string {
	lower := strings.ToLower(tok)
	if digits, ok := stringNumbers[lower]; ok {
		return digits
	}
	if idx := strings.Index(lower, "-"); idx > 0 {
		head, tail := lower[:idx], lower[idx:]
		if digits, ok := stringNumbers[head]; ok {
			return digits + tail
		}
	}
	return tok
}

// andFractionGroup collapses a QTY group "N and M/K" (the fraction
// either in plain or sentinel form) into a single token.
var andFractionGroup = regexp.MustCompile(`^(\d+) and (#(\d+)\$(\d+)|\d+/\d+)$`)

// stringRangeGroup collapses a QTY group "A to B" / "A or B" into the
// range form "A-B". A and B may be decimals or fraction sentinels.
var stringRangeGroup = regexp.MustCompile(`^([\d.]+|\d*#\d+\$\d+) (?:to|or) ([\d.]+|\d*#\d+\$\d+)$`)

// normalizeQTYTokens applies §4.5(a): string-number replacement on every
// QTY token, then collapses each run of consecutive QTY tokens that
// forms "N and M/K" or a string range "A to|or B" into its first token.
// It returns the surviving token texts alongside the label and marginal
// for each surviving position, plus the original token index of each.
func normalizeQTYTokens(tokens []token.Token, labels []token.Label, marginals []float64) (texts []string, outLabels []token.Label, outMarginals []float64, origIndex []int) {
	n := len(tokens)
	raw := make([]string, n)
	margs := make([]float64, n)
	for i, t := range tokens {
		if labels[i] == token.QTY {
			raw[i] = replaceStringNumber(t.Text)
		} else {
			raw[i] = t.Text
		}
		margs[i] = marginals[i]
	}

	skip := make([]bool, n)
	for start := 0; start < n; start++ {
		if labels[start] != token.QTY {
			continue
		}
		end := start
		for end+1 < n && labels[end+1] == token.QTY {
			end++
		}
		if end > start {
			group := raw[start : end+1]
			fragment := strings.Join(group, " ")

			replacement := fragment
			if m := andFractionGroup.FindStringSubmatch(fragment); m != nil {
				if strings.HasPrefix(m[2], "#") {
					replacement = m[1] + m[2]
				} else {
					replacement = m[1] + " " + m[2]
				}
			} else if m := stringRangeGroup.FindStringSubmatch(fragment); m != nil {
				replacement = m[1] + "-" + m[2]
			}

			if replacement != fragment {
				raw[start] = replacement
				margs[start] = mean(marginals[start : end+1])
				for i := start + 1; i <= end; i++ {
					skip[i] = true
				}
			}
		}
		start = end
	}

	for i := 0; i < n; i++ {
		if skip[i] {
			continue
		}
		texts = append(texts, raw[i])
		outLabels = append(outLabels, labels[i])
		outMarginals = append(outMarginals, margs[i])
		origIndex = append(origIndex, i)
	}
	return texts, outLabels, outMarginals, origIndex
}

// resolveQuantity converts a raw QTY string into its final Quantity
// representation, per §4.5's "Amount quantity resolution": a decimal if
// numeric, a (min,max) range if it matches "A-B", a decimal with
// Multiplier set if it ends in "x", otherwise kept as a raw string
// (a NonFatalParseAnomaly, never an error).
func resolveQuantity(raw string) (Quantity, Flag) {
	raw = strings.TrimSpace(raw)

	if display, ok := normalize.FormatFractionToken(raw); ok {
		raw = display
	}

	if fields := strings.Fields(raw); len(fields) == 2 && strings.EqualFold(fields[1], "dozen") {
		if v, err := parseDecimalOrFraction(fields[0]); err == nil {
			return Quantity{Kind: QuantityScalar, Value: v * 12, Max: v * 12}, 0
		}
	}
	if strings.EqualFold(raw, "dozen") {
		return Quantity{Kind: QuantityScalar, Value: 12, Max: 12}, 0
	}

	if strings.HasSuffix(raw, "x") && len(raw) > 1 {
		if v, err := parseDecimalOrFraction(strings.TrimSuffix(raw, "x")); err == nil {
			return Quantity{Kind: QuantityScalar, Value: v, Max: v}, Multiplier
		}
	}

	if parts := splitRange(raw); parts != nil {
		if min, err1 := parseDecimalOrFraction(parts[0]); err1 == nil {
			if max, err2 := parseDecimalOrFraction(parts[1]); err2 == nil {
				if min > max {
					min, max = max, min
				}
				return Quantity{Kind: QuantityRange, Value: min, Max: max}, Range
			}
		}
	}

	if v, err := parseDecimalOrFraction(raw); err == nil {
		return Quantity{Kind: QuantityScalar, Value: v, Max: v}, 0
	}

	return Quantity{Kind: QuantityRaw, Raw: raw}, 0
}

// splitRange splits "A-B" into its two sides, rendering fraction
// sentinels on either side to plain fractions first. Returns nil if raw
// is not a two-sided range.
func splitRange(raw string) []string {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	for i, p := range parts {
		if display, ok := normalize.FormatFractionToken(p); ok {
			parts[i] = display
		}
	}
	return parts
}

// parseDecimalOrFraction parses a plain decimal ("1.5"), a mixed number
// ("1 1/2"), or a bare fraction ("1/2").
func parseDecimalOrFraction(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if display, ok := normalize.FormatFractionToken(s); ok {
		s = display
	}
	if s == "" {
		return 0, strconv.ErrSyntax
	}

	fields := strings.Fields(s)
	var whole float64
	fracField := s
	if len(fields) == 2 {
		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, err
		}
		whole = w
		fracField = fields[1]
	}

	if idx := strings.Index(fracField, "/"); idx > 0 {
		num, err1 := strconv.ParseFloat(fracField[:idx], 64)
		den, err2 := strconv.ParseFloat(fracField[idx+1:], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, strconv.ErrSyntax
		}
		return whole + num/den, nil
	}

	if len(fields) == 2 {
		return 0, strconv.ErrSyntax
	}

	return strconv.ParseFloat(s, 64)
}

// formatQuantityText renders a resolved Quantity back to display text,
// for use when building an IngredientAmount's Text field.
func formatQuantityText(q Quantity) string {
	switch q.Kind {
	case QuantityRange:
		return formatDecimal(q.Value) + "-" + formatDecimal(q.Max)
	case QuantityRaw:
		return q.Raw
	default:
		return formatDecimal(q.Value)
	}
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
