package foundationfoods

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hilli/ingredientparser/embeddings"
	"github.com/hilli/ingredientparser/normalize"
)

// LoadCatalog reads the gzip-compressed FDC ingredient catalog CSV
// (columns: fdc_id, data_type, description, category) and returns one
// Ingredient per row, tokenized, stemmed, phrase-split, and weighted
// against embed. embed may be nil, in which case tokens are kept
// regardless of vocabulary membership (BM25 still works without
// embeddings; NewUSIF and NewFuzzy, and so NewResolver, need a non-nil
// embeddings model).
//
// Rows whose description yields no usable tokens are skipped: they can
// never be matched by any ranker and only dilute corpus statistics.
func LoadCatalog(r io.Reader, embed *embeddings.Model) ([]Ingredient, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("foundationfoods: opening gzip stream: %w", err)
	}
	defer gz.Close()

	reader := csv.NewReader(gz)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("foundationfoods: reading header: %w", err)
	}
	col, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []Ingredient
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("foundationfoods: reading row: %w", err)
		}

		fdcID, err := strconv.Atoi(strings.TrimSpace(record[col.fdcID]))
		if err != nil {
			return nil, fmt.Errorf("foundationfoods: invalid fdc_id %q: %w", record[col.fdcID], err)
		}
		description := record[col.description]

		tokens, weights := tokenizeFDCDescription(description, embed)
		if len(tokens) == 0 {
			continue
		}

		out = append(out, Ingredient{
			FDCID:       fdcID,
			DataType:    DataType(record[col.dataType]),
			Description: description,
			Category:    record[col.category],
			Tokens:      tokens,
			Weights:     weights,
		})
	}
	return out, nil
}

type columns struct {
	fdcID, dataType, description, category int
}

func columnIndex(header []string) (columns, error) {
	want := map[string]*int{}
	var c columns
	want["fdc_id"] = &c.fdcID
	want["data_type"] = &c.dataType
	want["description"] = &c.description
	want["category"] = &c.category

	found := map[string]bool{}
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		if ptr, ok := want[name]; ok {
			*ptr = i
			found[name] = true
		}
	}
	for name := range want {
		if !found[name] {
			return columns{}, fmt.Errorf("foundationfoods: catalog CSV missing column %q", name)
		}
	}
	return c, nil
}

// tokenizeFDCDescription splits description into phrases on commas and
// weights each phrase's tokens: 1e-3 less than the previous phrase
// (earlier phrases carry more of a description's meaning), zero from a
// negation token ("no", "not", "without") onward in the phrase, and
// reduced by 0.5 (floored at zero) from a de-emphasis token ("with")
// onward.
func tokenizeFDCDescription(description string, embed *embeddings.Model) ([]string, []float64) {
	tokens, _ := normalize.Tokenize(strings.ToLower(description))

	var words []string
	for _, t := range tokens {
		words = append(words, t.Text)
	}

	var outTokens []string
	var outWeights []float64
	phraseCount := 0

	for _, phrase := range splitOnComma(words) {
		prepared := prepareEmbeddingsTokens(phrase, embed)
		if len(prepared) == 0 {
			continue
		}
		weights := make([]float64, len(prepared))
		base := 1.0 - float64(phraseCount)*1e-3
		for i := range weights {
			weights[i] = base
		}

		if idx := firstIndex(prepared, negationTokens); idx >= 0 {
			for i := idx; i < len(weights); i++ {
				weights[i] = 0
			}
		}
		if idx := firstIndex(prepared, reducedRelevanceTokens); idx >= 0 {
			for i := idx; i < len(weights); i++ {
				weights[i] = maxFloat(weights[i]-0.5, 0)
			}
		}

		outTokens = append(outTokens, prepared...)
		outWeights = append(outWeights, weights...)
		phraseCount++
	}

	return outTokens, outWeights
}

// splitOnComma groups words into phrases separated by "," tokens,
// dropping the comma tokens themselves.
func splitOnComma(words []string) [][]string {
	var phrases [][]string
	var cur []string
	for _, w := range words {
		if w == "," {
			if len(cur) > 0 {
				phrases = append(phrases, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		phrases = append(phrases, cur)
	}
	return phrases
}

func firstIndex(tokens []string, set map[string]bool) int {
	for i, t := range tokens {
		if set[t] {
			return i
		}
	}
	return -1
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
