package foundationfoods_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/hilli/ingredientparser/embeddings"
	"github.com/hilli/ingredientparser/foundationfoods"
)

func gzipBytes(t *testing.T, contents string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(contents)); err != nil {
		t.Fatalf("writing gzip fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	return &buf
}

func fixtureEmbeddings(t *testing.T) *embeddings.Model {
	t.Helper()
	data := "7 3\n" +
		"egg 1.0 0.0 0.0\n" +
		"white 0.0 1.0 0.0\n" +
		"wine 0.1 0.9 0.0\n" +
		"chicken 0.0 0.0 1.0\n" +
		"stock 0.1 0.0 0.9\n" +
		"beef 0.0 0.1 0.9\n" +
		"raw 0.5 0.5 0.5\n"
	m, err := embeddings.Load(gzipBytes(t, data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func fixtureCatalogCSV() string {
	return "fdc_id,data_type,description,category\n" +
		"1,foundation_food,\"Egg, raw\",Dairy and Egg Products\n" +
		"2,foundation_food,\"Wine, white\",Beverages\n" +
		"3,foundation_food,\"Stock, chicken\",Soups\n" +
		"4,sr_legacy_food,\"Stock, beef\",Soups\n"
}

func loadFixtureCatalog(t *testing.T, embed *embeddings.Model) []foundationfoods.Ingredient {
	t.Helper()
	catalog, err := foundationfoods.LoadCatalog(gzipBytes(t, fixtureCatalogCSV()), embed)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatalf("expected non-empty catalog")
	}
	return catalog
}

func TestLoadCatalogSkipsEmptyDescriptions(t *testing.T) {
	embed := fixtureEmbeddings(t)
	csv := "fdc_id,data_type,description,category\n" +
		"99,foundation_food,\"12, 34\",Misc\n"
	catalog, err := foundationfoods.LoadCatalog(gzipBytes(t, csv), embed)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 0 {
		t.Errorf("expected row with only out-of-vocabulary/numeric tokens to be skipped, got %d entries", len(catalog))
	}
}

func TestResolveOverrideMatch(t *testing.T) {
	embed := fixtureEmbeddings(t)
	catalog := loadFixtureCatalog(t, embed)
	resolver := foundationfoods.NewResolver(catalog, embed)

	result, ok := resolver.ResolveText("egg")
	if !ok {
		t.Fatalf("expected override match for 'egg'")
	}
	if result.FDCID != 748967 {
		t.Errorf("expected override fdc_id 748967, got %d", result.FDCID)
	}
	if result.Confidence != 1 {
		t.Errorf("expected override confidence 1, got %v", result.Confidence)
	}
}

func TestResolveWhiteWineMatchesCatalog(t *testing.T) {
	embed := fixtureEmbeddings(t)
	catalog := loadFixtureCatalog(t, embed)
	resolver := foundationfoods.NewResolver(catalog, embed)

	result, ok := resolver.ResolveText("white wine")
	if !ok {
		t.Fatalf("expected a match for 'white wine'")
	}
	if result.FDCID != 2 {
		t.Errorf("expected fdc_id 2 (wine, white), got %d (%s)", result.FDCID, result.Text)
	}
}

func TestResolveNoVocabularyTokensReturnsNoMatch(t *testing.T) {
	embed := fixtureEmbeddings(t)
	catalog := loadFixtureCatalog(t, embed)
	resolver := foundationfoods.NewResolver(catalog, embed)

	if _, ok := resolver.ResolveText("lionfish"); ok {
		t.Errorf("expected no match for a name with no embedding-vocabulary tokens")
	}
}

func TestBM25RanksExactTermMatchHighest(t *testing.T) {
	embed := fixtureEmbeddings(t)
	catalog := loadFixtureCatalog(t, embed)
	bm25 := foundationfoods.NewBM25(catalog)

	matches := bm25.RankMatches([]string{"chicken", "stock"})
	if len(matches) == 0 {
		t.Fatalf("expected at least one BM25 match")
	}
	if matches[0].Ingredient.FDCID != 3 {
		t.Errorf("expected 'stock, chicken' (fdc 3) ranked first, got fdc %d", matches[0].Ingredient.FDCID)
	}
}
