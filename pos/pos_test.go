package pos_test

import (
	"testing"

	"github.com/hilli/ingredientparser/pos"
)

func TestTagOf(t *testing.T) {
	cases := map[string]pos.Tag{
		"and":     pos.CC,
		"or":      pos.CC,
		"of":      pos.IN,
		"the":     pos.DT,
		"!num":    pos.CD,
		"2":       pos.CD,
		"chopped": pos.VBN,
		"large":   pos.JJ,
		"onions":  pos.NNS,
		"onion":   pos.NN,
		",":       pos.SYM,
		"finely":  pos.RB,
	}
	for text, want := range cases {
		if got := pos.TagOf(text); got != want {
			t.Errorf("TagOf(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestIsSizeAdjective(t *testing.T) {
	if !pos.IsSizeAdjective("Large") {
		t.Error("expected 'Large' to be a size adjective")
	}
	if pos.IsSizeAdjective("chopped") {
		t.Error("did not expect 'chopped' to be a size adjective")
	}
}
