package core

import (
	"sort"

	"corpusprep/internal/corpus"
)

// TokenStats summarizes the token-count distribution of a corpus.
type TokenStats struct {
	Count int
	Min   int
	Max   int
	Mean  float64
	P50   int
	P95   int
}

// ComputeTokenStats builds the size-distribution summary for the dataset
// texts. Returns the zero value for an empty dataset.
func ComputeTokenStats(d corpus.Dataset) TokenStats {
	if len(d) == 0 {
		return TokenStats{}
	}

	sizes := make([]int, len(d))
	total := 0
	for i, r := range d {
		sizes[i] = TokenCount(r.Text)
		total += sizes[i]
	}
	sort.Ints(sizes)

	percentile := func(p float64) int {
		return sizes[int(p*float64(len(sizes)-1))]
	}

	return TokenStats{
		Count: len(sizes),
		Min:   sizes[0],
		Max:   sizes[len(sizes)-1],
		Mean:  float64(total) / float64(len(sizes)),
		P50:   percentile(0.50),
		P95:   percentile(0.95),
	}
}
