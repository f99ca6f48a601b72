package foundationfoods

import (
	"math"
	"sort"
)

// bm25K1 and bm25B are the ATIRE BM25 constants specified by §4.6 step 6.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25 ranks catalog Ingredients by classic term-frequency /
// inverse-document-frequency relevance against a query's token list.
// Larger scores are better matches.
type BM25 struct {
	corpus  []Ingredient
	termDoc map[string]map[int]int // token -> (doc index -> term frequency)
	idf     map[string]float64
	docLen  []int
	avgdl   float64
}

// NewBM25 builds a BM25 ranker over catalog.
func NewBM25(catalog []Ingredient) *BM25 {
	b := &BM25{
		corpus:  catalog,
		termDoc: make(map[string]map[int]int),
		idf:     make(map[string]float64),
		docLen:  make([]int, len(catalog)),
	}

	var totalLen int
	for i, ing := range catalog {
		b.docLen[i] = len(ing.Tokens)
		totalLen += len(ing.Tokens)
		for _, tok := range ing.Tokens {
			if b.termDoc[tok] == nil {
				b.termDoc[tok] = make(map[int]int)
			}
			b.termDoc[tok][i]++
		}
	}
	if len(catalog) > 0 {
		b.avgdl = float64(totalLen) / float64(len(catalog))
	}

	corpusSize := float64(len(catalog))
	for tok, docs := range b.termDoc {
		b.idf[tok] = math.Log(corpusSize / float64(len(docs)))
	}

	return b
}

// RankMatches scores every catalog Ingredient sharing at least one token
// with query, sorted best (highest score) first.
func (b *BM25) RankMatches(query []string) []Match {
	scores := make(map[int]float64)
	for _, tok := range query {
		docs, ok := b.termDoc[tok]
		if !ok {
			continue
		}
		idf := b.idf[tok]
		for idx, freq := range docs {
			denom := bm25K1 * (1 - bm25B + bm25B*float64(b.docLen[idx])/b.avgdl)
			scores[idx] += idf * float64(freq) * (bm25K1 + 1) / (denom + float64(freq))
		}
	}

	matches := make([]Match, 0, len(scores))
	for idx, score := range scores {
		matches = append(matches, Match{Ingredient: b.corpus[idx], Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}
