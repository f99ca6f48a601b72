package normalize_test

import (
	"strings"
	"testing"

	"github.com/hilli/ingredientparser/normalize"
)

func TestNormalizeUnicodeFraction(t *testing.T) {
	got := normalize.Normalize("¼ cup sugar", normalize.Options{})
	if !strings.Contains(got, "#1$4") {
		t.Errorf("expected internal fraction sentinel for 1/4, got %q", got)
	}
}

func TestNormalizeEnDash(t *testing.T) {
	got := normalize.Normalize("2–3 eggs", normalize.Options{})
	if strings.Contains(got, "–") {
		t.Errorf("expected en-dash to be replaced, got %q", got)
	}
}

func TestNormalizeEmDash(t *testing.T) {
	got := normalize.Normalize("salt—to taste", normalize.Options{})
	if !strings.Contains(got, " - ") {
		t.Errorf("expected em-dash to become ' - ', got %q", got)
	}
}

func TestNormalizeQuantityX(t *testing.T) {
	got := normalize.Normalize("2 x chicken breasts", normalize.Options{})
	if !strings.Contains(got, "2x") {
		t.Errorf("expected '2 x' to merge into '2x', got %q", got)
	}
}

func TestNormalizeTrailingAbbreviationPeriod(t *testing.T) {
	got := normalize.Normalize("1 tbsp. olive oil", normalize.Options{})
	if strings.Contains(got, "tbsp.") {
		t.Errorf("expected trailing period stripped from 'tbsp.', got %q", got)
	}
}

func TestFormatFractionTokenRoundTrip(t *testing.T) {
	got := normalize.Normalize("1 1/2 cups flour", normalize.Options{})
	if !strings.Contains(got, "1#1$2") {
		t.Fatalf("expected sentinel '1#1$2' in %q", got)
	}
	display, ok := normalize.FormatFractionToken("1#1$2")
	if !ok || display != "1 1/2" {
		t.Errorf("FormatFractionToken(1#1$2) = %q, %v; want '1 1/2', true", display, ok)
	}
}

func TestNormalizeStringRange(t *testing.T) {
	got := normalize.Normalize("1 to 2 cups flour", normalize.Options{})
	if !strings.Contains(got, "1-2") {
		t.Errorf("expected '1 to 2' rewritten to '1-2', got %q", got)
	}
}

func TestNormalizeStringRangeWithFractions(t *testing.T) {
	got := normalize.Normalize("1/4 to 1/2 tsp salt", normalize.Options{})
	if !strings.Contains(got, "#1$4-#1$2") {
		t.Errorf("expected fraction range collapsed to '#1$4-#1$2', got %q", got)
	}
}

func TestNormalizeStringRangeProtectsLeadingZero(t *testing.T) {
	got := normalize.Normalize("Type 00 or 1 flour", normalize.Options{})
	if strings.Contains(got, "00-1") || strings.Contains(got, "0-1") {
		t.Errorf("expected 'Type 00 or 1' left alone, got %q", got)
	}
}

func TestNormalizeDupeUnitRange(t *testing.T) {
	got := normalize.Normalize("100 g - 200 g chocolate", normalize.Options{})
	if !strings.Contains(got, "100-200 g") {
		t.Errorf("expected duplicate-unit range collapsed to '100-200 g', got %q", got)
	}
}

func TestNormalizeDupeUnitRangeKeepsMismatchedUnits(t *testing.T) {
	got := normalize.Normalize("1 lb to 500 g", normalize.Options{})
	if strings.Contains(got, "1-500") {
		t.Errorf("expected mismatched units to stay separate, got %q", got)
	}
}

func TestNormalizeSeparatesFusedQuantityUnit(t *testing.T) {
	got := normalize.Normalize("sliced into 5-10mm coins", normalize.Options{})
	if !strings.Contains(got, "5-10 mm") {
		t.Errorf("expected '5-10mm' separated into '5-10 mm', got %q", got)
	}
}

func TestNormalizeVulgarFractionRangeWithUnit(t *testing.T) {
	got := normalize.Normalize("(¼-½in)", normalize.Options{})
	if !strings.Contains(got, "#1$4-#1$2 in") {
		t.Errorf("expected '¼-½in' normalized to '#1$4-#1$2 in', got %q", got)
	}
}

func TestTraceCallback(t *testing.T) {
	var stages []string
	normalize.Normalize("1 cup sugar", normalize.Options{
		Trace: func(stage, _ string) { stages = append(stages, stage) },
	})
	if len(stages) == 0 {
		t.Error("expected trace callback to be invoked")
	}
}
