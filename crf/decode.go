package crf

import (
	"math"

	"github.com/hilli/ingredientparser/token"
)

// Result is the output of decoding one token sequence: the most likely
// label sequence plus the marginal probability the model assigns to the
// chosen label at each position.
type Result struct {
	Labels    []token.Label
	Marginals []float64
}

// Decode runs Viterbi decoding to find the most likely label sequence for
// featureSeq, then runs forward-backward to compute the marginal
// probability of the chosen label at each position.
func (m *Model) Decode(featureSeq []map[string]float64) Result {
	n := len(featureSeq)
	if n == 0 {
		return Result{}
	}

	labels := m.Labels
	k := len(labels)

	// Viterbi: delta[i][l] = best score of any path ending in label l at
	// position i; back[i][l] = the predecessor label index achieving it.
	delta := make([][]float64, n)
	back := make([][]int, n)
	for i := range delta {
		delta[i] = make([]float64, k)
		back[i] = make([]int, k)
	}

	for l, label := range labels {
		delta[0][l] = m.InitialWeights[label] + m.score(featureSeq[0], label)
		back[0][l] = -1
	}

	for i := 1; i < n; i++ {
		for l, label := range labels {
			emission := m.score(featureSeq[i], label)
			best := math.Inf(-1)
			bestPrev := 0
			for p, prevLabel := range labels {
				trans := m.Transitions[prevLabel][label]
				score := delta[i-1][p] + trans + emission
				if score > best {
					best = score
					bestPrev = p
				}
			}
			delta[i][l] = best
			back[i][l] = bestPrev
		}
	}

	bestLast := 0
	bestScore := math.Inf(-1)
	for l := range labels {
		if delta[n-1][l] > bestScore {
			bestScore = delta[n-1][l]
			bestLast = l
		}
	}

	path := make([]int, n)
	path[n-1] = bestLast
	for i := n - 1; i > 0; i-- {
		path[i-1] = back[i][path[i]]
	}

	resultLabels := make([]token.Label, n)
	for i, idx := range path {
		resultLabels[i] = labels[idx]
	}

	marginals := m.forwardBackwardMarginals(featureSeq, path)

	return Result{Labels: resultLabels, Marginals: marginals}
}

// forwardBackwardMarginals computes, for each position, the marginal
// probability of the label chosen by Viterbi at that position, using the
// standard forward-backward algorithm in log space for numerical
// stability.
func (m *Model) forwardBackwardMarginals(featureSeq []map[string]float64, path []int) []float64 {
	n := len(featureSeq)
	labels := m.Labels
	k := len(labels)

	alpha := make([][]float64, n)
	beta := make([][]float64, n)
	for i := range alpha {
		alpha[i] = make([]float64, k)
		beta[i] = make([]float64, k)
	}

	for l, label := range labels {
		alpha[0][l] = m.InitialWeights[label] + m.score(featureSeq[0], label)
	}
	for i := 1; i < n; i++ {
		for l, label := range labels {
			emission := m.score(featureSeq[i], label)
			terms := make([]float64, k)
			for p, prevLabel := range labels {
				terms[p] = alpha[i-1][p] + m.Transitions[prevLabel][label] + emission
			}
			alpha[i][l] = logSumExp(terms)
		}
	}

	for l := range labels {
		beta[n-1][l] = 0
	}
	for i := n - 2; i >= 0; i-- {
		for l, label := range labels {
			terms := make([]float64, k)
			for nIdx, nextLabel := range labels {
				emission := m.score(featureSeq[i+1], nextLabel)
				terms[nIdx] = m.Transitions[label][nextLabel] + emission + beta[i+1][nIdx]
			}
			beta[i][l] = logSumExp(terms)
		}
	}

	logZ := logSumExp(alpha[n-1])

	marginals := make([]float64, n)
	for i := 0; i < n; i++ {
		chosen := path[i]
		logMarginal := alpha[i][chosen] + beta[i][chosen] - logZ
		marginals[i] = math.Exp(logMarginal)
	}
	return marginals
}

func logSumExp(values []float64) float64 {
	max := math.Inf(-1)
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	var sum float64
	for _, v := range values {
		sum += math.Exp(v - max)
	}
	return max + math.Log(sum)
}
