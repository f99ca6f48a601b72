package foundationfoods

import (
	"math"
	"sort"

	"github.com/hilli/ingredientparser/embeddings"
)

// USIF ranks catalog Ingredients by cosine distance between a
// weighted-mean sentence embedding of the query tokens and a
// precomputed sentence embedding of each catalog entry (Unsupervised
// Smooth Inverse Frequency, §4.6 step 6). Smaller scores are better
// matches.
type USIF struct {
	embed     *embeddings.Model
	dimension int
	tokenProb map[string]float64
	minProb   float64
	a         float64
	vectors   [][]float32 // one sentence embedding per catalog entry
	corpus    []Ingredient
}

// NewUSIF builds a uSIF ranker over catalog using embed's vector table.
func NewUSIF(embed *embeddings.Model, catalog []Ingredient) *USIF {
	u := &USIF{embed: embed, dimension: embed.Dimension(), corpus: catalog}
	u.tokenProb = estimateTokenProbability(catalog)
	u.minProb = minProb(u.tokenProb)
	u.a = u.calculateAFactor(catalog)

	u.vectors = make([][]float32, len(catalog))
	for i, ing := range catalog {
		u.vectors[i] = u.embedWeighted(ing.Tokens)
	}
	return u
}

func estimateTokenProbability(catalog []Ingredient) map[string]float64 {
	counts := make(map[string]int)
	var total int
	for _, ing := range catalog {
		for _, tok := range ing.Tokens {
			counts[tok]++
			total++
		}
	}
	prob := make(map[string]float64, len(counts))
	for tok, count := range counts {
		prob[tok] = float64(count) / float64(total)
	}
	return prob
}

func minProb(prob map[string]float64) float64 {
	m := math.Inf(1)
	for _, p := range prob {
		if p < m {
			m = p
		}
	}
	if math.IsInf(m, 1) {
		return 0
	}
	return m
}

func (u *USIF) calculateAFactor(catalog []Ingredient) float64 {
	var tokenCount, docCount int
	for _, ing := range catalog {
		tokenCount += len(ing.Tokens)
		docCount++
	}
	avgLen := 0.0
	if docCount > 0 {
		avgLen = float64(tokenCount / docCount)
	}

	vocabSize := float64(len(u.tokenProb))
	if vocabSize == 0 {
		return 0
	}
	threshold := 1 - math.Pow(1-1/vocabSize, avgLen)

	var above int
	for _, p := range u.tokenProb {
		if p > threshold {
			above++
		}
	}
	alpha := float64(above) / vocabSize
	if alpha == 0 {
		return 0
	}
	z := 0.5 * vocabSize
	return (1 - alpha) / (alpha * z)
}

func (u *USIF) weight(tok string) float64 {
	p, ok := u.tokenProb[tok]
	if !ok {
		p = u.minProb
	}
	return u.a / (0.5*u.a + p)
}

// embedWeighted computes the uSIF sentence embedding for tokens: the
// weighted mean of their unit-normalized embedding vectors. Tokens
// absent from embed are skipped; if none are present, a vector of `a`
// repeated in every dimension is returned (matching the all-skip
// fallback of the original source).
func (u *USIF) embedWeighted(tokens []string) []float32 {
	var vecs [][]float32
	var weights []float64
	for _, tok := range tokens {
		v, ok := u.embed.Vector(tok)
		if !ok {
			continue
		}
		vecs = append(vecs, embeddings.Normalize(v))
		weights = append(weights, u.weight(tok))
	}
	if len(vecs) == 0 {
		out := make([]float32, u.dimension)
		for i := range out {
			out[i] = float32(u.a)
		}
		return out
	}
	return embeddings.WeightedMean(vecs, weights, u.dimension)
}

// RankMatches scores every catalog Ingredient by cosine distance to the
// query embedding, sorted best (smallest distance) first.
func (u *USIF) RankMatches(query []string) []Match {
	queryVec := u.embedWeighted(query)

	matches := make([]Match, len(u.corpus))
	for i, ing := range u.corpus {
		matches[i] = Match{Ingredient: ing, Score: embeddings.CosineDistance(queryVec, u.vectors[i])}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score < matches[j].Score })
	return matches
}
