package core

import (
	"errors"
	"fmt"

	"corpusprep/internal/corpus"
)

// ErrInvalidSplitSize is returned before any dataset access when the
// configured split fractions sum to more than 1.
var ErrInvalidSplitSize = errors.New("split size sum must be less or equal 1")

// sizeEpsilon absorbs float rounding in fraction sums like 0.7+0.15+0.15.
const sizeEpsilon = 1e-9

// SplitSizes holds the train/test/validation fractions, each in [0, 1].
type SplitSizes struct {
	Train float64
	Test  float64
	Val   float64
}

func (s SplitSizes) Sum() float64 { return s.Train + s.Test + s.Val }

func (s SplitSizes) Validate() error {
	if s.Sum() > 1+sizeEpsilon {
		return fmt.Errorf("%w: got %.4f", ErrInvalidSplitSize, s.Sum())
	}
	return nil
}

// SplitResult holds three datasets with pairwise disjoint row sets whose
// union covers the input dataset.
type SplitResult struct {
	Train corpus.Dataset
	Test  corpus.Dataset
	Val   corpus.Dataset
}

// Permuter produces a uniform random permutation of [0, n). *math/rand.Rand
// satisfies it, so callers control reproducibility through the seed.
type Permuter interface {
	Perm(n int) []int
}

// Split partitions d into train, test and validation subsets with no row
// in more than one subset. Rows are assigned by position in a random
// permutation: the first floor(N*train) go to train, the next up to
// floor(N*(train+test)) to test, and the remainder to val. When the
// fractions sum to less than 1 the validation subset absorbs the
// shortfall. Row order within each subset is permutation order.
func Split(d corpus.Dataset, sizes SplitSizes, rng Permuter) (SplitResult, error) {
	if err := sizes.Validate(); err != nil {
		return SplitResult{}, err
	}

	n := len(d)
	indexes := rng.Perm(n)

	b1 := int(float64(n) * sizes.Train)
	b2 := int(float64(n) * (sizes.Train + sizes.Test))

	pick := func(idx []int) corpus.Dataset {
		out := make(corpus.Dataset, 0, len(idx))
		for _, i := range idx {
			out = append(out, d[i])
		}
		return out
	}

	return SplitResult{
		Train: pick(indexes[:b1]),
		Test:  pick(indexes[b1:b2]),
		Val:   pick(indexes[b2:]),
	}, nil
}
