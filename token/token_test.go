package token_test

import (
	"testing"

	"github.com/hilli/ingredientparser/token"
)

func TestLabelValid(t *testing.T) {
	for _, l := range token.Labels {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if token.Label("BOGUS").Valid() {
		t.Error("BOGUS should not be valid")
	}
}

func TestLabelIsName(t *testing.T) {
	nameLabels := []token.Label{token.BNameTok, token.INameTok, token.NameVar, token.NameMod, token.NameSep}
	for _, l := range nameLabels {
		if !l.IsName() {
			t.Errorf("%q should be a NAME sub-label", l)
		}
	}
	nonName := []token.Label{token.QTY, token.UNIT, token.SIZE, token.PREP, token.PURPOSE, token.COMMENT, token.PUNC}
	for _, l := range nonName {
		if l.IsName() {
			t.Errorf("%q should not be a NAME sub-label", l)
		}
	}
}

func TestFlagHas(t *testing.T) {
	f := token.FlagCapitalized | token.FlagIsUnit
	if !f.Has(token.FlagCapitalized) {
		t.Error("expected FlagCapitalized set")
	}
	if f.Has(token.FlagInParens) {
		t.Error("did not expect FlagInParens set")
	}
	if !f.Has(token.FlagCapitalized | token.FlagIsUnit) {
		t.Error("expected both flags set")
	}
}
