package core

import (
	"strings"

	"corpusprep/internal/corpus"
)

// TokenCount returns the number of whitespace-separated tokens in s.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}

// FilterByLength drops records whose text has more than maxTokens
// whitespace-separated tokens. maxTokens == 0 disables the filter and
// returns the dataset unchanged.
func FilterByLength(d corpus.Dataset, maxTokens int) corpus.Dataset {
	if maxTokens == 0 {
		return d
	}
	out := make(corpus.Dataset, 0, len(d))
	for _, r := range d {
		if TokenCount(r.Text) <= maxTokens {
			out = append(out, r)
		}
	}
	return out
}
