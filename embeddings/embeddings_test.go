package embeddings_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/hilli/ingredientparser/embeddings"
)

func gzipFixture(t *testing.T, contents string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(contents)); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return &buf
}

func TestLoad(t *testing.T) {
	data := "2 3\nflour 0.1 0.2 0.3\nsugar 0.4 0.5 0.6\n"
	model, err := embeddings.Load(gzipFixture(t, data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if model.Len() != 2 || model.Dimension() != 3 {
		t.Errorf("got Len=%d Dimension=%d, want 2, 3", model.Len(), model.Dimension())
	}
	v, ok := model.Vector("flour")
	if !ok || v[0] != 0.1 {
		t.Errorf("Vector(flour) = %v, %v", v, ok)
	}
	if _, ok := model.Vector("missing"); ok {
		t.Error("expected 'missing' to be absent")
	}
}

func TestLoadRejectsMismatchedDimension(t *testing.T) {
	data := "1 3\nflour 0.1 0.2\n"
	if _, err := embeddings.Load(gzipFixture(t, data)); err == nil {
		t.Error("expected error for mismatched row dimension")
	}
}

func TestCosineDistanceIdentical(t *testing.T) {
	v := []float32{1, 0, 0}
	if d := embeddings.CosineDistance(v, v); d > 1e-9 {
		t.Errorf("expected ~0 distance for identical vectors, got %v", d)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := []float32{0, 0, 0}
	if got := embeddings.Normalize(v); got[0] != 0 {
		t.Errorf("expected zero vector unchanged, got %v", got)
	}
}
