package ingredientparser

import (
	"testing"

	"github.com/hilli/ingredientparser/postprocess"
)

func TestFormatAsFraction(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{3, "3"},
		{0.5, "1/2"},
		{0.25, "1/4"},
		{0.75, "3/4"},
		{1.0 / 3.0, "1/3"},
		{2.0 / 3.0, "2/3"},
		{0.125, "1/8"},
		{2.5, "2 1/2"},
		{1.75, "1 3/4"},
		{0.2, "1/5"},
		{5.0 / 6.0, "5/6"},
		// close enough to a fraction within the default 2% tolerance
		{0.33, "1/3"},
		{0.51, "1/2"},
		// nearly whole rounds to whole
		{1.99, "2"},
		{3.005, "3"},
		// nothing nearby: fall back to a trimmed decimal
		{0.43, "0.43"},
		{0.083, "0.083"},
		{12.3, "12.3"},
		{-0.5, "-1/2"},
		{-2.5, "-2 1/2"},
	}
	for _, tt := range tests {
		if got := FormatAsFraction(tt.value, 0); got != tt.want {
			t.Errorf("FormatAsFraction(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatAsFractionTightToleranceRejectsNearMiss(t *testing.T) {
	// 0.51 is "1/2" at the default tolerance but a plain decimal when the
	// caller demands a closer match.
	if got := FormatAsFraction(0.51, 0.005); got != "0.51" {
		t.Errorf("FormatAsFraction(0.51, 0.005) = %q, want %q", got, "0.51")
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		name string
		q    postprocess.Quantity
		want string
	}{
		{
			name: "scalar renders as fraction",
			q:    postprocess.Quantity{Kind: postprocess.QuantityScalar, Value: 1.5, Max: 1.5},
			want: "1 1/2",
		},
		{
			name: "range renders both ends",
			q:    postprocess.Quantity{Kind: postprocess.QuantityRange, Value: 0.25, Max: 0.5},
			want: "1/4-1/2",
		},
		{
			name: "raw string passes through",
			q:    postprocess.Quantity{Kind: postprocess.QuantityRaw, Raw: "a few"},
			want: "a few",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQuantity(tt.q, 0); got != tt.want {
				t.Errorf("FormatQuantity = %q, want %q", got, tt.want)
			}
		})
	}
}
