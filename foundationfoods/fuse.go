package foundationfoods

import (
	"math"
	"sort"
)

// fuseResults combines BM25, uSIF, and Fuzzy match lists into a single
// ranking by min-max normalizing each ranker's top topK scores to [0,1]
// (inverting uSIF and Fuzzy, since smaller is better there), weighting
// each ranker's normalized score by a confidence estimated from its
// score distribution, and summing (§4.6 step 8). fuzzyMatches may be nil
// if the agreement gate (step 7) decided not to run the Fuzzy ranker.
func fuseResults(bm25Matches, fuzzyMatches, usifMatches []Match) []Match {
	bm25Matches = truncate(bm25Matches, topK)
	usifMatches = truncate(usifMatches, topK)
	fuzzyMatches = truncate(fuzzyMatches, topK)

	bm25Norm := normalizeScores(scoresOf(bm25Matches))
	usifNorm := normalizeScores(scoresOf(usifMatches))
	fuzzyNorm := normalizeScores(scoresOf(fuzzyMatches))

	bm25Dict := scoreDict(bm25Matches, bm25Norm)
	usifDict := scoreDict(usifMatches, usifNorm)
	fuzzyDict := scoreDict(fuzzyMatches, fuzzyNorm)

	bm25Conf := estimateRankerConfidence(bm25Norm)
	usifConf := estimateRankerConfidence(usifNorm)
	fuzzyConf := estimateRankerConfidence(fuzzyNorm)
	total := bm25Conf + usifConf + fuzzyConf
	if total > 0 {
		bm25Conf = bm25Conf / total * 3
		usifConf = usifConf / total * 3
		fuzzyConf = fuzzyConf / total * 3
	}

	seen := map[int]Ingredient{}
	for _, m := range bm25Matches {
		seen[m.Ingredient.FDCID] = m.Ingredient
	}
	for _, m := range usifMatches {
		seen[m.Ingredient.FDCID] = m.Ingredient
	}

	fused := make([]Match, 0, len(seen))
	for id, ing := range seen {
		bm25Score := bm25Dict[id] // defaults to 0 if absent
		// uSIF and Fuzzy are distances: invert after normalization so
		// bigger is better, matching BM25's orientation. A candidate
		// absent from a ranker's top-topK defaults to its worst
		// normalized score (1), which inverts to 0.
		usifScore, usifSeen := usifDict[id]
		if !usifSeen {
			usifScore = 1
		}
		fuzzyScore, fuzzySeen := fuzzyDict[id]
		if !fuzzySeen {
			fuzzyScore = 1
		}

		fusedScore := bm25Conf*bm25Score + usifConf*(1-usifScore) + fuzzyConf*(1-fuzzyScore)
		fused = append(fused, Match{Ingredient: ing, Score: fusedScore / 3})
	}

	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return preferenceRank(fused[i].Ingredient.DataType) > preferenceRank(fused[j].Ingredient.DataType)
	})
	return fused
}

func truncate(matches []Match, n int) []Match {
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}

func scoresOf(matches []Match) []float64 {
	out := make([]float64, len(matches))
	for i, m := range matches {
		out[i] = m.Score
	}
	return out
}

func scoreDict(matches []Match, normalized []float64) map[int]float64 {
	out := make(map[int]float64, len(matches))
	for i, m := range matches {
		out[m.Ingredient.FDCID] = normalized[i]
	}
	return out
}

// normalizeScores min-max normalizes scores to [0,1]. A constant input
// (all scores identical, including the empty list treated as constant)
// collapses to 0.5 per element so a ranker with no useful spread doesn't
// bias fusion toward 0 or 1.
func normalizeScores(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	min, max := scores[0], scores[0]
	allEqual := true
	for _, s := range scores[1:] {
		if s != scores[0] {
			allEqual = false
		}
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if allEqual {
		out := make([]float64, len(scores))
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	rangeVal := math.Max(max-min, 1e-9)
	out := make([]float64, len(scores))
	for i, s := range scores {
		v := (s - min) / rangeVal
		out[i] = math.Max(0, math.Min(1, v))
	}
	return out
}

// estimateRankerConfidence estimates how confident a ranker is in its
// best match from the gap between the top two scores (larger gap, more
// confidence) and the coefficient of variation of the remaining scores
// (lower variation, clearer winner) (§4.6 step 8). Scores are sorted
// descending internally, so the same estimate works for the
// similarity-oriented BM25 list and the distance-oriented uSIF and
// Fuzzy lists.
func estimateRankerConfidence(normalized []float64) float64 {
	if len(normalized) < 2 {
		return 0
	}

	scores := make([]float64, len(normalized))
	copy(scores, normalized)
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	maxScore, secondMax := scores[0], scores[1]
	if maxScore == 0 {
		return 0
	}
	relativeGap := (maxScore - secondMax) / maxScore

	distributionFactor := 1.0
	if len(scores) > 2 {
		remaining := scores[1:]
		mean, std := meanStdDev(remaining)
		if mean > 0 {
			cv := std / mean
			distributionFactor = 1.0 / (1.0 + cv)
		}
	}

	return 0.7*relativeGap + 0.3*distributionFactor
}

func meanStdDev(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// percentDifference returns the relative difference between two scores,
// as a fraction of the larger score.
func percentDifference(a, b float64) float64 {
	if a == b {
		return 0
	}
	max, min := a, b
	if min > max {
		max, min = min, max
	}
	return (max - min) / max
}
