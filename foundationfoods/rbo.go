package foundationfoods

import "math"

// topK bounds how many of each ranker's results feed the agreement gate
// and score fusion (§4.6 steps 7-8).
const topK = 100

// rankBiasedOverlap computes the Rank-Biased Overlap (Webber, Moffat &
// Zobel 2010) between two ranked match lists, truncated to topK. p
// controls how top-weighted the comparison is: smaller p means only the
// very top ranks matter.
func rankBiasedOverlap(a, b []Match, p float64) float64 {
	aIDs := idsOf(a, topK)
	bIDs := idsOf(b, topK)

	n := len(aIDs)
	if len(bIDs) < n {
		n = len(bIDs)
	}
	if n == 0 {
		return 0
	}

	seenA := make(map[int]bool, n)
	seenB := make(map[int]bool, n)
	var rboSum float64
	for depth := 1; depth <= n; depth++ {
		seenA[aIDs[depth-1]] = true
		seenB[bIDs[depth-1]] = true

		overlap := 0
		for id := range seenA {
			if seenB[id] {
				overlap++
			}
		}
		agreement := float64(overlap) / float64(depth)
		rboSum += agreement * math.Pow(p, float64(depth))
	}

	return (1 - p) * rboSum
}

func idsOf(matches []Match, limit int) []int {
	if len(matches) > limit {
		matches = matches[:limit]
	}
	ids := make([]int, len(matches))
	for i, m := range matches {
		ids[i] = m.Ingredient.FDCID
	}
	return ids
}
