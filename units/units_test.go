package units_test

import (
	"testing"

	"github.com/hilli/ingredientparser/units"
)

func TestLookupAndIsUnit(t *testing.T) {
	if !units.IsUnit("Tbsp") {
		t.Error("expected 'Tbsp' to be recognized as a unit")
	}
	if units.IsUnit("banana") {
		t.Error("did not expect 'banana' to be recognized as a unit")
	}
}

func TestPluralizeSingularize(t *testing.T) {
	if got := units.Pluralize("cup"); got != "cups" {
		t.Errorf("Pluralize(cup) = %q, want cups", got)
	}
	if got := units.Singularize("cloves"); got != "clove" {
		t.Errorf("Singularize(cloves) = %q, want clove", got)
	}
	if got := units.Pluralize("banana"); got != "banana" {
		t.Errorf("Pluralize(banana) = %q, want unchanged", got)
	}
}

func TestConvertVolumetricNoOpForNonVolumetric(t *testing.T) {
	qty, unit, err := units.ConvertVolumetric(2, "gram", units.Imperial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qty != 2 || unit != "gram" {
		t.Errorf("expected unchanged (2, gram), got (%v, %v)", qty, unit)
	}
}

func TestConvertVolumetricNoOpForMetricVolume(t *testing.T) {
	qty, unit, err := units.ConvertVolumetric(500, "ml", units.Imperial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qty != 500 || unit != "ml" {
		t.Errorf("expected unchanged (500, ml), got (%v, %v)", qty, unit)
	}
}

func TestConvertVolumetricSwapsUnitIdentityNotQuantity(t *testing.T) {
	tests := []struct {
		unit   string
		target units.System
		want   string
	}{
		{"cup", units.Imperial, "imperial cup"},
		{"cups", units.Imperial, "imperial cup"},
		{"fl oz", units.Imperial, "imperial fluid ounce"},
		{"pt", units.Imperial, "imperial pint"},
		{"qt", units.Imperial, "imperial quart"},
		{"gal", units.Imperial, "imperial gallon"},
	}
	for _, tt := range tests {
		qty, unit, err := units.ConvertVolumetric(2, tt.unit, tt.target)
		if err != nil {
			t.Fatalf("ConvertVolumetric(2, %q, %q): unexpected error: %v", tt.unit, tt.target, err)
		}
		if qty != 2 {
			t.Errorf("ConvertVolumetric(2, %q, %q): quantity = %v, want unchanged 2", tt.unit, tt.target, qty)
		}
		if unit != tt.want {
			t.Errorf("ConvertVolumetric(2, %q, %q) unit = %q, want %q", tt.unit, tt.target, unit, tt.want)
		}
	}
}

// TestConvertVolumetricUSCustomaryUsesFluidPrefixedGoUnitsNames exercises
// the US customary side of the swap, where go-units registers the
// matching unit under a "fluid"/"customary"-prefixed name ("fluid
// pint", "customary fluid ounce") rather than the bare name it uses for
// the imperial unit. A wrong or unregistered go-units name here would
// surface as an error, not a silently wrong result.
func TestConvertVolumetricUSCustomaryUsesFluidPrefixedGoUnitsNames(t *testing.T) {
	tests := []struct {
		unit string
		want string
	}{
		{"fl oz", "fluid ounce"},
		{"pt", "pint"},
		{"qt", "quart"},
		{"gal", "gallon"},
	}
	for _, tt := range tests {
		qty, unit, err := units.ConvertVolumetric(2, tt.unit, units.USCustomary)
		if err != nil {
			t.Fatalf("ConvertVolumetric(2, %q, us_customary): unexpected error: %v", tt.unit, err)
		}
		if qty != 2 {
			t.Errorf("ConvertVolumetric(2, %q, us_customary): quantity = %v, want unchanged 2", tt.unit, qty)
		}
		if unit != tt.want {
			t.Errorf("ConvertVolumetric(2, %q, us_customary) unit = %q, want %q", tt.unit, unit, tt.want)
		}
	}
}

func TestConvertVolumetricSameSystemIsNoOp(t *testing.T) {
	qty, unit, err := units.ConvertVolumetric(3, "cup", units.USCustomary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qty != 3 || unit != "cup" {
		t.Errorf("expected unchanged (3, cup), got (%v, %v)", qty, unit)
	}
}
