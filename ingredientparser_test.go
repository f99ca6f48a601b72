package ingredientparser

import (
	"errors"
	"testing"

	"github.com/hilli/ingredientparser/crf"
	"github.com/hilli/ingredientparser/features"
	"github.com/hilli/ingredientparser/postprocess"
	"github.com/hilli/ingredientparser/token"
)

// testModel is a minimal, hand-built CRF model: enough for Decode to run
// to completion and produce a label for every token, without needing a
// trained model file on disk.
func testModel() *crf.Model {
	return &crf.Model{
		Labels: []token.Label{token.QTY, token.UNIT, token.BNameTok},
		FeatureWeights: map[string]map[token.Label]float64{
			"is_numeric": {token.QTY: 5, token.UNIT: -5, token.BNameTok: -5},
			"is_unit":    {token.UNIT: 5, token.QTY: -5, token.BNameTok: -5},
		},
		Transitions: map[token.Label]map[token.Label]float64{
			token.QTY:      {token.UNIT: 1, token.QTY: 0, token.BNameTok: 0},
			token.UNIT:     {token.BNameTok: 1, token.QTY: 0, token.UNIT: 0},
			token.BNameTok: {token.BNameTok: 1, token.QTY: 0, token.UNIT: 0},
		},
		InitialWeights: map[token.Label]float64{token.QTY: 1, token.UNIT: 0, token.BNameTok: 0},
	}
}

func testParser() *Parser {
	return &Parser{model: testModel(), emitter: features.NewEmitter(nil)}
}

func TestParseTokensReturnsOneEntryPerToken(t *testing.T) {
	p := testParser()

	labeled, err := p.ParseTokens("2 cups flour")
	if err != nil {
		t.Fatalf("ParseTokens: %v", err)
	}
	if len(labeled) == 0 {
		t.Fatal("expected at least one labeled token")
	}
	for i, l := range labeled {
		if l.TokenIndex != i {
			t.Errorf("labeled[%d].TokenIndex = %d, want %d", i, l.TokenIndex, i)
		}
		if !l.Label.Valid() {
			t.Errorf("labeled[%d].Label = %q is not a valid label", i, l.Label)
		}
		if l.Marginal <= 0 || l.Marginal > 1 {
			t.Errorf("labeled[%d].Marginal = %v, expected in (0, 1]", i, l.Marginal)
		}
	}
}

func TestParseTokensRejectsEmptySentence(t *testing.T) {
	p := testParser()
	if _, err := p.ParseTokens(""); err == nil {
		t.Fatal("expected error for empty sentence")
	}
}

func TestParseEndToEnd(t *testing.T) {
	// The hand-built model decodes "2 cups flour" deterministically: QTY
	// from the initial weight, UNIT from the is_unit emission, and the
	// name from the UNIT -> B_NAME_TOK transition.
	p := testParser()

	result, err := p.Parse("2 cups flour", postprocess.DefaultOptions)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if result.Sentence != "2 cups flour" {
		t.Errorf("sentence = %q, want the original input", result.Sentence)
	}
	if len(result.Amounts) != 1 {
		t.Fatalf("expected 1 amount, got %+v", result.Amounts)
	}
	if result.Amounts[0].Quantity.Value != 2 || result.Amounts[0].Unit != "cup" {
		t.Errorf("amount = %+v, want quantity 2, canonical unit cup", result.Amounts[0])
	}
	if len(result.Names) != 1 || result.Names[0].Text != "flour" {
		t.Errorf("names = %+v, want [flour]", result.Names)
	}
	if result.Names[0].Confidence <= 0 || result.Names[0].Confidence > 1 {
		t.Errorf("name confidence = %v, expected in (0, 1]", result.Names[0].Confidence)
	}
}

func TestParseRejectsEmptySentence(t *testing.T) {
	p := testParser()
	_, err := p.Parse("", postprocess.DefaultOptions)
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError for empty sentence, got %v", err)
	}
}
