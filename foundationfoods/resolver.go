package foundationfoods

import (
	"github.com/hilli/ingredientparser/embeddings"
	"github.com/hilli/ingredientparser/normalize"
	"github.com/hilli/ingredientparser/pos"
)

// agreementThreshold is the minimum BM25/uSIF Rank-Biased Overlap below
// which the Fuzzy ranker is also run to help arbitrate (§4.6 step 7).
const agreementThreshold = 0.2

// rboP is the Rank-Biased Overlap persistence parameter (expected depth
// ~20 at p=0.95).
const rboP = 0.95

// rejectThreshold and rejectMargin gate the final decision (§4.6 step 9):
// below rejectThreshold, a top-two gap no bigger than rejectMargin means
// no confident match exists.
const (
	rejectThreshold = 0.95
	rejectMargin    = 0.01
)

// Resolver matches parsed ingredient names to FDC catalog entries. A
// Resolver is immutable once built and safe for concurrent use: the
// catalog and embeddings it wraps are read-only (§5).
type Resolver struct {
	embed *embeddings.Model
	bm25  *BM25
	usif  *USIF
	fuzzy *Fuzzy
}

// NewResolver builds a Resolver over catalog using embed's vector table
// for the uSIF and Fuzzy rankers.
func NewResolver(catalog []Ingredient, embed *embeddings.Model) *Resolver {
	return &Resolver{
		embed: embed,
		bm25:  NewBM25(catalog),
		usif:  NewUSIF(embed, catalog),
		fuzzy: NewFuzzy(embed, catalog),
	}
}

// ResolveText tokenizes and POS-tags name (an already-parsed ingredient
// name, e.g. "butternut squash"), then resolves it against the catalog.
// It reports ok=false for a NonFatalParseAnomaly: no tokens survive
// vocabulary filtering, or no candidate clears the confidence gate.
func (r *Resolver) ResolveText(name string) (Result, bool) {
	tokens, _ := normalize.Tokenize(name)
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	tags := pos.TagSentence(tokens)
	return r.Resolve(texts, tags)
}

// Resolve matches tokens (an ingredient name's tokens) and their POS tags
// against the catalog, following §4.6 steps 1-9.
func (r *Resolver) Resolve(tokens []string, tags []pos.Tag) (Result, bool) {
	if len(tokens) == 0 {
		return Result{}, false
	}

	stripped := StripAmbiguousLeadingAdjectives(tokens, tags)

	// prepareEmbeddingsTokens stems, applies the spelling substitutions,
	// and filters to the embedding vocabulary, so `normalized` here is
	// the final query token list.
	normalized := prepareEmbeddingsTokens(stripped, r.embed)
	if len(normalized) == 0 {
		return Result{}, false
	}

	if override, ok := overrides[overrideKey(normalized)]; ok {
		return override, true
	}

	if !hasNonRawVerb(normalized) {
		normalized = append(normalized, "raw")
	}

	usifMatches := r.usif.RankMatches(normalized)
	bm25Matches := r.bm25.RankMatches(normalized)

	var fuzzyMatches []Match
	agreement := rankBiasedOverlap(bm25Matches, usifMatches, rboP)
	if agreement < agreementThreshold {
		candidates := candidateIDs(bm25Matches, usifMatches, topK)
		fuzzyMatches = r.fuzzy.RankMatches(normalized, candidates)
	}

	fused := fuseResults(bm25Matches, fuzzyMatches, usifMatches)
	if len(fused) == 0 {
		return Result{}, false
	}
	if len(fused) == 1 {
		return toResult(fused[0]), true
	}

	if fused[0].Score < rejectThreshold && percentDifference(fused[0].Score, fused[1].Score) <= rejectMargin {
		return Result{}, false
	}

	return toResult(fused[0]), true
}

func hasNonRawVerb(tokens []string) bool {
	for _, t := range tokens {
		if nonRawFoodVerbStems[t] {
			return true
		}
	}
	return false
}

func candidateIDs(a, b []Match, limit int) map[int]bool {
	ids := make(map[int]bool)
	for _, m := range truncate(a, limit) {
		ids[m.Ingredient.FDCID] = true
	}
	for _, m := range truncate(b, limit) {
		ids[m.Ingredient.FDCID] = true
	}
	return ids
}

func toResult(m Match) Result {
	return Result{
		Text:       m.Ingredient.Description,
		Confidence: m.Score,
		FDCID:      m.Ingredient.FDCID,
		Category:   m.Ingredient.Category,
		DataType:   m.Ingredient.DataType,
	}
}
