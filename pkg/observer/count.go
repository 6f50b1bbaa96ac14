package observer

import (
	"fmt"
	"math"

	"seqinfer/pkg/common"
)

// CountSeries holds, per transition pattern, the evidence accumulated at
// each sequence position under the active weighting policy. Every series
// has length len(seq); entry t reflects matches whose outcome symbol sits
// at position <= t, so the first order entries are always zero.
type CountSeries struct {
	Space  *Space
	Series [][]float64
}

// For returns pattern p's series, or nil if p is not in the space.
func (c *CountSeries) For(p Pattern) []float64 {
	i := c.Space.Index(p)
	if i < 0 {
		return nil
	}
	return c.Series[i]
}

// Len returns the length of every series (the sequence length).
func (c *CountSeries) Len() int {
	if len(c.Series) == 0 {
		return 0
	}
	return len(c.Series[0])
}

// CountOptions configures CountPatterns. Zero Nitem means "use the number
// of distinct symbols observed". Decay and Window are mutually exclusive;
// leaving both zero selects cumulative counting.
type CountOptions struct {
	Nitem  int
	Decay  float64
	Window int
}

// Policy returns the weighting policy the options select.
func (o CountOptions) Policy() common.Policy {
	switch {
	case o.Decay != 0:
		return common.PolicyDecay
	case o.Window != 0:
		return common.PolicyWindow
	}
	return common.PolicyCumulative
}

// CountPatterns scans seq and produces the count series of every pattern
// of the given order. Symbols outside [0, Nitem) never match a pattern,
// so an explicit Nitem larger than the observed alphabet simply yields
// extra all-zero series, and pause symbols (value Nitem) contribute
// nothing.
func CountPatterns(seq common.Sequence, order int, opt CountOptions) (*CountSeries, error) {
	if opt.Decay != 0 && opt.Window != 0 {
		return nil, fmt.Errorf("%w: decay and window are mutually exclusive", ErrInvalidParameter)
	}
	if opt.Decay < 0 {
		return nil, fmt.Errorf("%w: decay %g must be > 0", ErrInvalidParameter, opt.Decay)
	}
	if opt.Window < 0 {
		return nil, fmt.Errorf("%w: window %d must be >= 1", ErrInvalidParameter, opt.Window)
	}
	nitem := opt.Nitem
	if nitem == 0 {
		nitem = seq.Distinct()
	}
	space, err := NewSpace(order, nitem)
	if err != nil {
		return nil, err
	}

	n := len(seq)
	series := make([][]float64, space.Size())
	indicator := make([]float64, n)
	for i := range series {
		p := space.Pattern(i)
		for t := range indicator {
			if t >= order && matchAt(seq, t, p) {
				indicator[t] = 1
			} else {
				indicator[t] = 0
			}
		}
		switch {
		case opt.Decay != 0:
			series[i] = leakySeries(indicator, opt.Decay)
		case opt.Window != 0:
			series[i] = windowSeries(indicator, opt.Window)
		default:
			series[i] = cumulativeSeries(indicator)
		}
	}
	return &CountSeries{Space: space, Series: series}, nil
}

// matchAt reports whether the pattern's outcome lands on position t,
// i.e. seq[t-order..t] equals p.
func matchAt(seq common.Sequence, t int, p Pattern) bool {
	start := t - len(p) + 1
	for j, v := range p {
		if seq[start+j] != v {
			return false
		}
	}
	return true
}

func cumulativeSeries(indicator []float64) []float64 {
	out := make([]float64, len(indicator))
	sum := 0.0
	for t, v := range indicator {
		sum += v
		out[t] = sum
	}
	return out
}

// leakySeries is a first-order IIR filter: each value depends on the
// previous one, so the pass is inherently sequential.
func leakySeries(indicator []float64, decay float64) []float64 {
	out := make([]float64, len(indicator))
	factor := math.Exp(-1 / decay)
	prev := 0.0
	for t, v := range indicator {
		prev = factor*prev + v
		out[t] = prev
	}
	return out
}

// windowSeries is a trailing sum over the last window entries, with the
// window zero-padded before the start of the sequence.
func windowSeries(indicator []float64, window int) []float64 {
	out := make([]float64, len(indicator))
	sum := 0.0
	for t, v := range indicator {
		sum += v
		if t >= window {
			sum -= indicator[t-window]
		}
		out[t] = sum
	}
	return out
}
