package foundationfoods

import (
	"math"
	"sort"

	"github.com/hilli/ingredientparser/cache"
	"github.com/hilli/ingredientparser/embeddings"
)

// similarityCacheSize bounds the per-token-pair similarity cache (§5).
const similarityCacheSize = 512

// Fuzzy ranks catalog Ingredients by a fuzzy-Jaccard document distance
// metric built from per-token-pair Euclidean distances between
// embeddings (§4.6 step 6, Morales-Garzón et al. 2020). Smaller scores
// are better matches.
type Fuzzy struct {
	embed       *embeddings.Model
	corpus      map[int]Ingredient
	simCache    *cache.Cache[[2]string, float64]
	vectorCache *cache.Cache[string, []float32]
}

// NewFuzzy builds a Fuzzy ranker over catalog. Catalog token embedding
// vectors are computed lazily and cached via vectorCache on first use,
// rather than eagerly, since a single resolved name typically only
// touches a small slice of the catalog's tokens.
func NewFuzzy(embed *embeddings.Model, catalog []Ingredient) *Fuzzy {
	f := &Fuzzy{
		embed:       embed,
		corpus:      make(map[int]Ingredient, len(catalog)),
		simCache:    cache.New[[2]string, float64](similarityCacheSize),
		vectorCache: cache.New[string, []float32](similarityCacheSize),
	}
	for _, ing := range catalog {
		f.corpus[ing.FDCID] = ing
	}
	return f
}

func (f *Fuzzy) vector(tok string) []float32 {
	if v, ok := f.vectorCache.Get(tok); ok {
		return v
	}
	v, _ := f.embed.Vector(tok)
	f.vectorCache.Add(tok, v)
	return v
}

// tokenSimilarity maps the Euclidean distance between a and b's
// embeddings through 1/(1+exp(-1/d)), returning 1 when the tokens are
// identical (d == 0).
func (f *Fuzzy) tokenSimilarity(a, b string) float64 {
	key := [2]string{a, b}
	if v, ok := f.simCache.Get(key); ok {
		return v
	}
	va, vb := f.vector(a), f.vector(b)
	if len(va) == 0 || len(vb) == 0 {
		f.simCache.Add(key, 0)
		return 0
	}
	d := embeddings.EuclideanDistance(va, vb)
	var sim float64
	if d == 0 {
		sim = 1
	} else {
		sim = 1 / (1 + math.Exp(-1/d))
	}
	f.simCache.Add(key, sim)
	return sim
}

// maxTokenSimilarity returns the best similarity between tok and any
// token in others.
func (f *Fuzzy) maxTokenSimilarity(tok string, others []string) float64 {
	best := 0.0
	for _, o := range others {
		if s := f.tokenSimilarity(tok, o); s > best {
			best = s
		}
	}
	return best
}

// fuzzyDocumentDistance computes 1 minus the fuzzy-Jaccard similarity
// between query and candidate token sets.
func (f *Fuzzy) fuzzyDocumentDistance(query, candidate []string) float64 {
	union := map[string]bool{}
	for _, t := range query {
		union[t] = true
	}
	for _, t := range candidate {
		union[t] = true
	}

	inQuery := map[string]bool{}
	for _, t := range query {
		inQuery[t] = true
	}
	inCandidate := map[string]bool{}
	for _, t := range candidate {
		inCandidate[t] = true
	}

	var unionMembership, queryMembership, candidateMembership float64
	for tok := range union {
		var queryScore, candidateScore float64
		switch {
		case inQuery[tok] && inCandidate[tok]:
			queryScore, candidateScore = 1, 1
		case inQuery[tok]:
			queryScore = 1
			candidateScore = f.maxTokenSimilarity(tok, candidate)
		case inCandidate[tok]:
			candidateScore = 1
			queryScore = f.maxTokenSimilarity(tok, query)
		}
		unionMembership += queryScore * candidateScore
		queryMembership += queryScore
		candidateMembership += candidateScore
	}

	denom := queryMembership + candidateMembership - unionMembership
	if denom <= 0 {
		return 1
	}
	return 1 - unionMembership/denom
}

// RankMatches scores the catalog Ingredients in candidateIDs (or the
// whole catalog, if candidateIDs is nil) against query, sorted best
// (smallest distance) first.
func (f *Fuzzy) RankMatches(query []string, candidateIDs map[int]bool) []Match {
	ids := candidateIDs
	if ids == nil {
		ids = make(map[int]bool, len(f.corpus))
		for id := range f.corpus {
			ids[id] = true
		}
	}

	matches := make([]Match, 0, len(ids))
	for id := range ids {
		ing, ok := f.corpus[id]
		if !ok {
			continue
		}
		score := f.fuzzyDocumentDistance(query, ing.Tokens)
		matches = append(matches, Match{Ingredient: ing, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score < matches[j].Score })
	return matches
}
