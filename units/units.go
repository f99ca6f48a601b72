// Package units holds the canonical unit vocabulary used to recognize and
// normalize UNIT-labeled tokens, together with the volumetric system
// conversion the volumetric_units_system option requires.
//
// The lookup-by-name-or-alias table here follows the shape of the
// teacher's own CocktailUnit table in bartender.go, generalized from
// cocktail pours to the full set of cooking units the ingredient grammar
// recognizes. github.com/bcicen/go-units stands in for the teacher's
// hand-rolled millilitre constants, used here to validate a unit name
// against its registry rather than to rescale a quantity: the
// volumetric_units_system option only ever changes which definition a
// unit word is attached to, never the parsed number.
package units

import (
	"fmt"
	"strings"

	gounits "github.com/bcicen/go-units"
)

// System names a volumetric unit system an amount can be expressed in.
type System string

const (
	USCustomary System = "us_customary"
	Imperial    System = "imperial"
	Metric      System = "metric"
)

// Unit describes one recognized unit and its singular/plural surface
// forms and aliases.
type Unit struct {
	Singular string
	Plural   string
	Aliases  []string
	System   System
	// Volumetric is true for units of volume. Only the five units with an
	// entry in volumetricSystems (cup, fluid ounce, pint, quart, gallon)
	// are eligible for the us_customary/imperial swap ConvertVolumetric
	// performs; the rest (milliliter, liter) are volumetric but have no
	// imperial definition distinct from their US customary one.
	Volumetric bool
}

// units is the canonical table. Mass, count, and miscellaneous units are
// included so IsUnit/Singularize/Pluralize cover the full UNIT label
// vocabulary, not just the volumetric subset that ConvertVolumetric acts
// on.
var unitTable = []Unit{
	{Singular: "cup", Plural: "cups", Aliases: []string{"c"}, System: USCustomary, Volumetric: true},
	{Singular: "tablespoon", Plural: "tablespoons", Aliases: []string{"tbsp", "tbsp.", "tbs"}, System: USCustomary},
	{Singular: "teaspoon", Plural: "teaspoons", Aliases: []string{"tsp", "tsp."}, System: USCustomary},
	{Singular: "fluid ounce", Plural: "fluid ounces", Aliases: []string{"fl oz", "fl. oz", "fl. oz.", "floz"}, System: USCustomary, Volumetric: true},
	{Singular: "pint", Plural: "pints", Aliases: []string{"pt"}, System: USCustomary, Volumetric: true},
	{Singular: "quart", Plural: "quarts", Aliases: []string{"qt"}, System: USCustomary, Volumetric: true},
	{Singular: "gallon", Plural: "gallons", Aliases: []string{"gal"}, System: USCustomary, Volumetric: true},
	{Singular: "milliliter", Plural: "milliliters", Aliases: []string{"millilitre", "millilitres", "ml"}, System: Metric, Volumetric: true},
	{Singular: "liter", Plural: "liters", Aliases: []string{"litre", "litres", "l"}, System: Metric, Volumetric: true},

	{Singular: "gram", Plural: "grams", Aliases: []string{"g", "gr"}, System: Metric},
	{Singular: "kilogram", Plural: "kilograms", Aliases: []string{"kg"}, System: Metric},
	{Singular: "ounce", Plural: "ounces", Aliases: []string{"oz"}, System: USCustomary},
	{Singular: "pound", Plural: "pounds", Aliases: []string{"lb", "lbs", "#"}, System: USCustomary},

	{Singular: "pinch", Plural: "pinches"},
	{Singular: "dash", Plural: "dashes"},
	{Singular: "clove", Plural: "cloves"},
	{Singular: "slice", Plural: "slices"},
	{Singular: "can", Plural: "cans"},
	{Singular: "tin", Plural: "tins"},
	{Singular: "jar", Plural: "jars"},
	{Singular: "package", Plural: "packages", Aliases: []string{"pkg", "pkg."}},
	{Singular: "packet", Plural: "packets"},
	{Singular: "sachet", Plural: "sachets"},
	{Singular: "envelope", Plural: "envelopes"},
	{Singular: "bag", Plural: "bags"},
	{Singular: "block", Plural: "blocks"},
	{Singular: "bottle", Plural: "bottles"},
	{Singular: "box", Plural: "boxes"},
	{Singular: "bucket", Plural: "buckets"},
	{Singular: "container", Plural: "containers"},
	{Singular: "loaf", Plural: "loaves"},
	{Singular: "stick", Plural: "sticks"},
	{Singular: "sprig", Plural: "sprigs"},
	{Singular: "bunch", Plural: "bunches"},
	{Singular: "head", Plural: "heads"},
	{Singular: "piece", Plural: "pieces"},
	{Singular: "strip", Plural: "strips"},
	{Singular: "stalk", Plural: "stalks"},
	{Singular: "knob", Plural: "knobs"},
}

var (
	byForm      = map[string]*Unit{}
	flattenList []string
)

func init() {
	for i := range unitTable {
		u := &unitTable[i]
		byForm[u.Singular] = u
		byForm[u.Plural] = u
		flattenList = append(flattenList, u.Singular, u.Plural)
		for _, a := range u.Aliases {
			byForm[strings.ToLower(a)] = u
			flattenList = append(flattenList, strings.ToLower(a))
		}
	}
}

// Lookup finds the Unit whose singular, plural, or alias form matches
// text, case-insensitively.
func Lookup(text string) (*Unit, bool) {
	u, ok := byForm[strings.ToLower(strings.TrimSpace(text))]
	return u, ok
}

// IsUnit reports whether text is a recognized unit surface form.
func IsUnit(text string) bool {
	_, ok := Lookup(text)
	return ok
}

// FlattenedList returns every recognized surface form (singular, plural,
// and aliases), mirroring the original's FLATTENED_UNITS_LIST used to
// trim leading unit tokens from multi-ingredient phrases.
func FlattenedList() []string {
	out := make([]string, len(flattenList))
	copy(out, flattenList)
	return out
}

// Pluralize returns the plural surface form of the unit text names,
// whether text is the unit's singular form or one of its aliases ("oz"
// gives "ounces"); text that is already the plural form, or is not a
// recognized unit, is returned unchanged.
func Pluralize(text string) string {
	u, ok := Lookup(text)
	if !ok || strings.EqualFold(text, u.Plural) {
		return text
	}
	return u.Plural
}

// Singularize returns the singular surface form for text if text is the
// plural form of a recognized unit; otherwise (a singular form, an alias,
// or an unrecognized word) it returns text unchanged.
func Singularize(text string) string {
	u, ok := Lookup(text)
	if !ok || !strings.EqualFold(strings.TrimSpace(text), u.Plural) {
		return text
	}
	return u.Singular
}

// volumetricSystemForm names, for one of the five units whose definition
// differs between US customary and imperial measure, the surface form
// ConvertVolumetric attaches in that system and the go-units unit name
// used to confirm go-units actually knows it. goUnitsName is empty for
// "cup": go-units' registry (see volume_units.go in its source) has no
// cup unit in either system, so there is nothing to validate against
// and ConvertVolumetric skips the Find call for it.
type volumetricSystemForm struct {
	display     string
	goUnitsName string
}

// volumetricSystems covers exactly the units the volumetric_units_system
// option names: cup, fluid ounce, pint, quart, and gallon. Milliliter and
// liter are volumetric but have no separate imperial definition, so they
// have no entry here and ConvertVolumetric leaves them untouched.
//
// The go-units names below are its actual registered unit names, not the
// "US"/"imperial"-prefixed names a generic library might use: go-units
// registers the imperial pint/quart/gallon/fluid ounce under their bare
// names and the US customary ones under separate "fluid"/"customary"
// names (e.g. Pint is "pint", the US customary counterpart is
// "fluid pint").
var volumetricSystems = map[string]map[System]volumetricSystemForm{
	"cup": {
		USCustomary: {display: "cup"},
		Imperial:    {display: "imperial cup"},
	},
	"fluid ounce": {
		USCustomary: {display: "fluid ounce", goUnitsName: "customary fluid ounce"},
		Imperial:    {display: "imperial fluid ounce", goUnitsName: "fluid ounce"},
	},
	"pint": {
		USCustomary: {display: "pint", goUnitsName: "fluid pint"},
		Imperial:    {display: "imperial pint", goUnitsName: "pint"},
	},
	"quart": {
		USCustomary: {display: "quart", goUnitsName: "fluid quart"},
		Imperial:    {display: "imperial quart", goUnitsName: "quart"},
	},
	"gallon": {
		USCustomary: {display: "gallon", goUnitsName: "fluid gallon"},
		Imperial:    {display: "imperial gallon", goUnitsName: "gallon"},
	},
}

// ConvertVolumetric reassigns unit's surface form to its definition in
// target (us_customary or imperial), for the five units whose
// definition actually differs between the two systems. It never rescales
// quantity: a US cup and an imperial cup are different physical volumes,
// but the parsed recipe text said "cup", and swapping which definition
// that word is attached to is the full extent of what this option does.
// Units outside that set of five (including milliliter and liter, which
// have no imperial-specific definition) are returned unchanged.
func ConvertVolumetric(quantity float64, unit string, target System) (float64, string, error) {
	u, ok := Lookup(unit)
	if !ok || !u.Volumetric {
		return quantity, unit, nil
	}

	forms, ok := volumetricSystems[u.Singular]
	if !ok {
		return quantity, unit, nil
	}

	form, ok := forms[target]
	if !ok {
		return quantity, unit, fmt.Errorf("units: unknown target system %q", target)
	}
	if form.goUnitsName != "" {
		if _, err := gounits.Find(form.goUnitsName); err != nil {
			return quantity, unit, fmt.Errorf("units: unrecognized target unit %q: %w", form.goUnitsName, err)
		}
	}

	return quantity, form.display, nil
}
