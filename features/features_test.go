package features_test

import (
	"testing"

	"github.com/hilli/ingredientparser/features"
	"github.com/hilli/ingredientparser/pos"
	"github.com/hilli/ingredientparser/structure"
	"github.com/hilli/ingredientparser/token"
)

func TestEmitProducesContextFeatures(t *testing.T) {
	tokens := []token.Token{
		{Text: "2", FeatText: "2"},
		{Text: "cup", FeatText: "cup"},
		{Text: "Flour", FeatText: "Flour"},
	}
	tags := []pos.Tag{pos.CD, pos.NN, pos.NN}
	struc := structure.Analyze(tokens, tags)

	e := features.NewEmitter(nil)
	feats := e.Emit(tokens, tags, struc)

	if len(feats) != 3 {
		t.Fatalf("expected 3 feature maps, got %d", len(feats))
	}
	if feats[1]["is_unit"] != 1 {
		t.Error("expected is_unit feature on 'cup'")
	}
	if feats[2]["is_capitalized"] != 1 {
		t.Error("expected is_capitalized feature on 'Flour'")
	}
	if feats[0]["-1:EOS"] != 1 {
		t.Error("expected EOS marker for missing previous context at sentence start")
	}
	if feats[0]["shape:d"] != 1 {
		t.Errorf("expected numeric shape 'd' for '2', got features %v", feats[0])
	}
}
