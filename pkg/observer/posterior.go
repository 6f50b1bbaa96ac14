package observer

import (
	"fmt"
	"math"
)

// Estimate summarizes the posterior over transition probabilities. MAP,
// Mean and SD are indexed like the CountSeries they were derived from:
// one series per pattern, one entry per sequence position. Alpha is a
// fixed metadata field reserved for future extension.
type Estimate struct {
	Space *Space
	MAP   [][]float64
	Mean  [][]float64
	SD    [][]float64
	Alpha float64
}

// MeanFor returns pattern p's posterior-mean series, or nil if p is not
// in the space.
func (e *Estimate) MeanFor(p Pattern) []float64 {
	if i := e.Space.Index(p); i >= 0 {
		return e.Mean[i]
	}
	return nil
}

func (e *Estimate) MAPFor(p Pattern) []float64 {
	if i := e.Space.Index(p); i >= 0 {
		return e.MAP[i]
	}
	return nil
}

func (e *Estimate) SDFor(p Pattern) []float64 {
	if i := e.Space.Index(p); i >= 0 {
		return e.SD[i]
	}
	return nil
}

// EstimatePosterior combines a count series with a prior over the same
// pattern space. For each pattern p = (context, outcome) and position t,
// the Dirichlet parameter is count[p][t] + prior[p]; the concentration
// total sums that parameter over every outcome sharing p's context (the
// whole alphabet when order is 0). Then
//
//	mean = this / total
//	MAP  = (this - 1) / (total - 2)
//	SD   = sqrt(mean * (1 - mean) / (total + 1))
//
// Indeterminate MAP forms (total <= 2) are left to IEEE arithmetic and
// surface as NaN or Inf in the output; they signal insufficient evidence,
// not a failure.
func EstimatePosterior(count *CountSeries, prior *Prior) (*Estimate, error) {
	if count == nil || prior == nil {
		return nil, fmt.Errorf("%w: nil count series or prior", ErrInvalidState)
	}
	if !count.Space.Equal(prior.Space) {
		return nil, fmt.Errorf("%w: count space (order=%d nitem=%d) does not match prior space (order=%d nitem=%d)",
			ErrInvalidState, count.Space.Order, count.Space.Nitem, prior.Space.Order, prior.Space.Nitem)
	}
	if len(count.Series) != len(prior.Weight) {
		return nil, fmt.Errorf("%w: count series has %d patterns, prior has %d",
			ErrInvalidState, len(count.Series), len(prior.Weight))
	}

	space := count.Space
	n := count.Len()
	est := &Estimate{
		Space: space,
		MAP:   make([][]float64, space.Size()),
		Mean:  make([][]float64, space.Size()),
		SD:    make([][]float64, space.Size()),
		Alpha: 1,
	}
	for i := range est.Mean {
		est.MAP[i] = make([]float64, n)
		est.Mean[i] = make([]float64, n)
		est.SD[i] = make([]float64, n)
	}

	// Siblings are contiguous blocks of Nitem indices.
	nitem := space.Nitem
	for base := 0; base < space.Size(); base += nitem {
		for t := 0; t < n; t++ {
			total := 0.0
			for s := 0; s < nitem; s++ {
				total += count.Series[base+s][t] + prior.Weight[base+s]
			}
			for s := 0; s < nitem; s++ {
				i := base + s
				this := count.Series[i][t] + prior.Weight[i]
				mean := this / total
				est.Mean[i][t] = mean
				est.MAP[i][t] = (this - 1) / (total - 2)
				est.SD[i][t] = math.Sqrt(mean * (1 - mean) / (total + 1))
			}
		}
	}
	return est, nil
}
