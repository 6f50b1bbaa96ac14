package observer

import (
	"math"

	"seqinfer/pkg/common"
)

// Predictions holds, for binary alphabets, two one-step-ahead views of
// the probability of observing symbol 0:
//   - Current: after all observations up to and including position t.
//   - Prior: the same quantity lagged by one position, i.e. what the
//     observer believed about position t before seeing it.
type Predictions struct {
	CurrentP0   []float64
	CurrentSDP0 []float64
	PriorP0     []float64
	PriorSDP0   []float64
}

// predict computes one-step predictions for a binary alphabet. Positions
// whose context is incomplete or contains a pause symbol (value Nitem)
// fall back to the prior Dirichlet mean and SD. The prior parameters come
// from the configured prior at order 0; for higher orders the first
// element of a context is assumed uniformly drawn, so a flat [1,1] is
// used.
func predict(seq common.Sequence, est *Estimate, prior *Prior) *Predictions {
	space := est.Space
	if space.Nitem != 2 {
		return nil
	}
	a0, a1 := 1.0, 1.0
	if space.Order == 0 {
		a0 = prior.Weight[0]
		a1 = prior.Weight[1]
	}
	sum := a0 + a1
	priorP0 := a0 / sum
	priorSDP0 := math.Sqrt(a0 * a1 / (sum * sum * (sum + 1)))

	n := len(seq)
	if n == 0 {
		return &Predictions{}
	}
	pred := &Predictions{
		CurrentP0:   make([]float64, n),
		CurrentSDP0: make([]float64, n),
		PriorP0:     make([]float64, n),
		PriorSDP0:   make([]float64, n),
	}
	for t := 0; t < n; t++ {
		pred.CurrentP0[t] = priorP0
		pred.CurrentSDP0[t] = priorSDP0
	}

	order := space.Order
	if order == 0 {
		mean := est.Mean[0]
		sd := est.SD[0]
		copy(pred.CurrentP0, mean)
		copy(pred.CurrentSDP0, sd)
	} else {
		p := make(Pattern, order+1)
		for t := order; t < n; t++ {
			copy(p, seq[t-order+1:t+1])
			p[order] = 0
			i := space.Index(p)
			if i < 0 {
				// pause in the context window, keep the prior
				continue
			}
			pred.CurrentP0[t] = est.Mean[i][t]
			pred.CurrentSDP0[t] = est.SD[i][t]
		}
	}

	pred.PriorP0[0] = priorP0
	pred.PriorSDP0[0] = priorSDP0
	copy(pred.PriorP0[1:], pred.CurrentP0[:n-1])
	copy(pred.PriorSDP0[1:], pred.CurrentSDP0[:n-1])
	return pred
}
