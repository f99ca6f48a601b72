package normalize_test

import (
	"testing"

	"github.com/hilli/ingredientparser/normalize"
)

func TestTokenizeSplitsPunctuation(t *testing.T) {
	tokens, _ := normalize.Tokenize("2 cups flour (sifted)")
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	want := []string{"2", "cups", "flour", "(", "sifted", ")"}
	if len(texts) != len(want) {
		t.Fatalf("got %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestTokenizeSingularizesUnits(t *testing.T) {
	tokens, singularized := normalize.Tokenize("2 cups flour")
	if tokens[1].Text != "cup" {
		t.Errorf("expected 'cups' singularized to 'cup', got %q", tokens[1].Text)
	}
	if len(singularized) != 1 || singularized[0] != 1 {
		t.Errorf("expected singularized index [1], got %v", singularized)
	}
}

func TestTokenizeTrailingFullStop(t *testing.T) {
	tokens, _ := normalize.Tokenize("salt to taste.")
	last := tokens[len(tokens)-1]
	if last.Text != "." {
		t.Errorf("expected trailing token to be '.', got %q", last.Text)
	}
}

func TestTokenizeProtectsAbbreviation(t *testing.T) {
	tokens, _ := normalize.Tokenize("e.g. thyme")
	if tokens[0].Text != "e.g." {
		t.Errorf("expected abbreviation 'e.g.' to stay intact, got %q", tokens[0].Text)
	}
}

func TestStripAccents(t *testing.T) {
	if got := normalize.StripAccents("café"); got != "cafe" {
		t.Errorf("StripAccents(café) = %q, want cafe", got)
	}
}
