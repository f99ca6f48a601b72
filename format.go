package ingredientparser

import (
	"math"
	"strconv"

	"github.com/hilli/ingredientparser/postprocess"
)

// cookingFraction pairs a fraction's display form with its decimal value.
type cookingFraction struct {
	display string
	value   float64
}

// cookingFractions are the fractions recipes are actually written in:
// the same set the normalizer recognizes as Unicode vulgar fractions.
// Halves and quarters lead so a value near 0.5 renders as "1/2", never
// as a coarser eighth.
var cookingFractions = []cookingFraction{
	{"1/2", 0.5},
	{"1/4", 0.25},
	{"3/4", 0.75},
	{"1/3", 1.0 / 3.0},
	{"2/3", 2.0 / 3.0},
	{"1/8", 0.125},
	{"3/8", 0.375},
	{"5/8", 0.625},
	{"7/8", 0.875},
	{"1/6", 1.0 / 6.0},
	{"5/6", 5.0 / 6.0},
	{"1/5", 0.2},
	{"2/5", 0.4},
	{"3/5", 0.6},
	{"4/5", 0.8},
}

// DefaultFractionTolerance is how close a decimal must be to a cooking
// fraction for FormatAsFraction to use the fraction form.
const DefaultFractionTolerance = 0.02

// FormatAsFraction renders value the way a recipe writes it: "1/2"
// rather than "0.5", "2 1/2" rather than "2.5", plain integers for
// whole values, and a trimmed decimal for anything that isn't within
// tolerance of a cooking fraction. A tolerance <= 0 selects
// DefaultFractionTolerance.
func FormatAsFraction(value float64, tolerance float64) string {
	if tolerance <= 0 {
		tolerance = DefaultFractionTolerance
	}
	if value < 0 {
		return "-" + FormatAsFraction(-value, tolerance)
	}

	whole := math.Floor(value)
	frac := value - whole

	if frac < tolerance {
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}
	if frac > 1-tolerance {
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}

	for _, f := range cookingFractions {
		if math.Abs(frac-f.value) < tolerance {
			if whole > 0 {
				return strconv.FormatFloat(whole, 'f', -1, 64) + " " + f.display
			}
			return f.display
		}
	}

	return trimmedDecimal(value)
}

// FormatQuantity renders a resolved Quantity for display: both ends of
// a range, the raw string for an unresolved quantity, and the fraction
// form for scalars.
func FormatQuantity(q postprocess.Quantity, tolerance float64) string {
	switch q.Kind {
	case postprocess.QuantityRange:
		return FormatAsFraction(q.Value, tolerance) + "-" + FormatAsFraction(q.Max, tolerance)
	case postprocess.QuantityRaw:
		return q.Raw
	default:
		return FormatAsFraction(q.Value, tolerance)
	}
}

// trimmedDecimal formats a value that matched no cooking fraction, with
// just enough precision to distinguish it: three decimals below 0.1
// (where "0.06" and "0.063" are different pinches), two below ten, one
// above.
func trimmedDecimal(value float64) string {
	var s string
	switch {
	case value < 0.1:
		s = strconv.FormatFloat(value, 'f', 3, 64)
	case value < 10:
		s = strconv.FormatFloat(value, 'f', 2, 64)
	default:
		s = strconv.FormatFloat(value, 'f', 1, 64)
	}

	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
