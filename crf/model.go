// Package crf implements a linear-chain conditional random field: model
// representation, Viterbi decoding, and forward-backward marginal
// computation, loaded once from a trained model file and shared
// read-only by every parse.
package crf

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/hilli/ingredientparser/token"
)

// Model is an immutable, trained linear-chain CRF. It maps per-token
// feature names to per-label weights, plus a transition weight matrix
// between labels. Loaded once and shared by every Parser.
type Model struct {
	Labels []token.Label
	// FeatureWeights[feature][label] is the emission weight contributed
	// by the presence of feature when the token at that position is
	// assigned label.
	FeatureWeights map[string]map[token.Label]float64
	// Transitions[from][to] is the weight of transitioning from label
	// `from` to label `to` between adjacent positions.
	Transitions map[token.Label]map[token.Label]float64
	// InitialWeights[label] is the weight of label being the first in
	// the sequence.
	InitialWeights map[token.Label]float64
}

// gobModel is the on-disk representation, gob-encoded and gzip-compressed.
// Separated from Model so the public type is free to grow fields the
// serialized format doesn't need to carry (e.g. caches built at load
// time), without breaking older model files.
type gobModel struct {
	Labels         []token.Label
	FeatureWeights map[string]map[token.Label]float64
	Transitions    map[token.Label]map[token.Label]float64
	InitialWeights map[token.Label]float64
}

// Save writes the model to w as a gzip-compressed gob stream.
func (m *Model) Save(w io.Writer) error {
	gz := gzip.NewWriter(w)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(gobModel{
		Labels:         m.Labels,
		FeatureWeights: m.FeatureWeights,
		Transitions:    m.Transitions,
		InitialWeights: m.InitialWeights,
	}); err != nil {
		return fmt.Errorf("crf: encoding model: %w", err)
	}
	return gz.Close()
}

// Load reads a model previously written with Save.
func Load(r io.Reader) (*Model, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("crf: opening gzip stream: %w", err)
	}
	defer gz.Close()

	var gm gobModel
	dec := gob.NewDecoder(gz)
	if err := dec.Decode(&gm); err != nil {
		return nil, fmt.Errorf("crf: decoding model: %w", err)
	}
	if len(gm.Labels) == 0 {
		return nil, fmt.Errorf("crf: model has no labels")
	}
	for _, l := range gm.Labels {
		if !l.Valid() {
			return nil, fmt.Errorf("crf: model label %q is not in the fixed label set", l)
		}
	}

	return &Model{
		Labels:         gm.Labels,
		FeatureWeights: gm.FeatureWeights,
		Transitions:    gm.Transitions,
		InitialWeights: gm.InitialWeights,
	}, nil
}

// score returns the emission score contributed by features for label.
func (m *Model) score(features map[string]float64, label token.Label) float64 {
	var total float64
	for feat, value := range features {
		if byLabel, ok := m.FeatureWeights[feat]; ok {
			total += byLabel[label] * value
		}
	}
	return total
}

// encodeToBytes is a convenience for round-tripping a model through an
// in-memory buffer without a filesystem. Nothing in the module calls it.
func encodeToBytes(m *Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
