package crf_test

import (
	"bytes"
	"testing"

	"github.com/hilli/ingredientparser/crf"
	"github.com/hilli/ingredientparser/token"
)

func tinyModel() *crf.Model {
	return &crf.Model{
		Labels: []token.Label{token.QTY, token.UNIT, token.BNameTok},
		FeatureWeights: map[string]map[token.Label]float64{
			"is_numeric": {token.QTY: 5, token.UNIT: -5, token.BNameTok: -5},
			"is_unit":    {token.UNIT: 5, token.QTY: -5, token.BNameTok: -5},
			"is_word":    {token.BNameTok: 5, token.QTY: -5, token.UNIT: -5},
		},
		Transitions: map[token.Label]map[token.Label]float64{
			token.QTY:      {token.UNIT: 2, token.BNameTok: 0, token.QTY: 0},
			token.UNIT:     {token.BNameTok: 2, token.QTY: 0, token.UNIT: 0},
			token.BNameTok: {token.BNameTok: 1, token.QTY: 0, token.UNIT: 0},
		},
		InitialWeights: map[token.Label]float64{
			token.QTY: 1, token.UNIT: 0, token.BNameTok: 0,
		},
	}
}

func TestDecodePicksExpectedLabels(t *testing.T) {
	m := tinyModel()
	features := []map[string]float64{
		{"is_numeric": 1},
		{"is_unit": 1},
		{"is_word": 1},
	}
	result := m.Decode(features)
	want := []token.Label{token.QTY, token.UNIT, token.BNameTok}
	for i, l := range want {
		if result.Labels[i] != l {
			t.Errorf("position %d: got %q, want %q", i, result.Labels[i], l)
		}
	}
	for i, p := range result.Marginals {
		if p <= 0 || p > 1 {
			t.Errorf("marginal[%d] = %v, expected in (0, 1]", i, p)
		}
	}
}

func TestModelSaveLoadRoundTrip(t *testing.T) {
	m := tinyModel()
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := crf.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Labels) != len(m.Labels) {
		t.Errorf("got %d labels, want %d", len(loaded.Labels), len(m.Labels))
	}
}
