package sequence

import (
	"fmt"
	"math/rand"

	"seqinfer/pkg/common"
)

// Generate draws a length-n sequence from explicit first-order transition
// probabilities: trans[i][j] is the probability of symbol j following
// symbol i, each row summing to 1. The first symbol is drawn uniformly.
func Generate(rng *rand.Rand, trans [][]float64, n int) (common.Sequence, error) {
	k := len(trans)
	if k == 0 {
		return nil, fmt.Errorf("empty transition matrix")
	}
	for i, row := range trans {
		if len(row) != k {
			return nil, fmt.Errorf("transition row %d has %d entries, want %d", i, len(row), k)
		}
	}
	if n <= 0 {
		return common.Sequence{}, nil
	}

	seq := make(common.Sequence, n)
	seq[0] = common.Symbol(rng.Intn(k))
	for t := 1; t < n; t++ {
		seq[t] = draw(rng, trans[seq[t-1]])
	}
	return seq, nil
}

func draw(rng *rand.Rand, probs []float64) common.Symbol {
	r := rng.Float64()
	sum := 0.0
	for s, p := range probs {
		sum += p
		if r < sum {
			return common.Symbol(s)
		}
	}
	return common.Symbol(len(probs) - 1)
}
