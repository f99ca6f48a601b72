package postprocess

import "github.com/hilli/ingredientparser/units"

// convertVolumetricSystem rewrites every amount (and each child of every
// composite amount) whose unit is one of the five units target's system
// redefines to that system's unit name, leaving the parsed quantity
// untouched. Amounts with a raw-string quantity are left alone: the
// lookup needs a numeric value to key off of, and an unrecognized
// go-units name is a NonFatalParseAnomaly, so the amount is left as-is
// rather than dropped.
func convertVolumetricSystem(amounts []IngredientAmount, composites []CompositeIngredientAmount, target units.System) {
	for i := range amounts {
		convertAmount(&amounts[i], target)
	}
	for i := range composites {
		for j := range composites[i].Amounts {
			convertAmount(&composites[i].Amounts[j], target)
		}
	}
}

// convertAmount reassigns a's unit to its target-system surface form.
// ConvertVolumetric never rescales the quantity, so Quantity.Value and
// Quantity.Max are left exactly as parsed; only Unit and the unit word
// in Text change.
func convertAmount(a *IngredientAmount, target units.System) {
	switch a.Quantity.Kind {
	case QuantityScalar, QuantityRange:
		_, unit, err := units.ConvertVolumetric(a.Quantity.Value, a.Unit, target)
		if err != nil {
			return
		}
		a.Unit = unit
		a.Text = formatQuantityText(a.Quantity) + " " + unit
	}
}
