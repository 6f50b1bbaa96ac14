package observer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"

	"seqinfer/pkg/common"
)

// Alphas holds, per context and position, the full Dirichlet parameter
// vector over outcomes: Values[c][t][s] = count[context+(s,)][t] +
// prior[context+(s,)].
type Alphas struct {
	Space  *Space
	Values [][][]float64
}

// For returns the parameter matrix of the given context (one row per
// position, one column per outcome), or nil for an unknown context.
func (a *Alphas) For(context Pattern) [][]float64 {
	if len(context) != a.Space.Order {
		return nil
	}
	c := 0
	for _, v := range context {
		if v < 0 || int(v) >= a.Space.Nitem {
			return nil
		}
		c = c*a.Space.Nitem + int(v)
	}
	return a.Values[c]
}

func dirichletAlphas(count *CountSeries, prior *Prior) *Alphas {
	space := count.Space
	n := count.Len()
	nitem := space.Nitem
	values := make([][][]float64, space.Contexts())
	for c := range values {
		values[c] = make([][]float64, n)
		base := c * nitem
		for t := 0; t < n; t++ {
			row := make([]float64, nitem)
			for s := 0; s < nitem; s++ {
				row[s] = count.Series[base+s][t] + prior.Weight[base+s]
			}
			values[c][t] = row
		}
	}
	return &Alphas{Space: space, Values: values}
}

// shannonSurprise is -log2 of the one-step-ahead predicted probability of
// each observation. Positions with no preceding estimate, and patterns
// leaving the alphabet (pauses), yield NaN.
func shannonSurprise(seq common.Sequence, est *Estimate) []float64 {
	order := est.Space.Order
	out := make([]float64, len(seq))
	for t := range out {
		out[t] = math.NaN()
	}
	start := order
	if start < 1 {
		start = 1
	}
	for t := start; t < len(seq); t++ {
		i := est.Space.Index(Pattern(seq[t-order : t+1]))
		if i < 0 {
			continue
		}
		out[t] = -math.Log2(est.Mean[i][t-1])
	}
	return out
}

// klDirichlet is the KL divergence between two Dirichlet distributions
// with parameter vectors alpha and beta.
// Reference: https://statproofbook.github.io/P/dir-kl.html
func klDirichlet(alpha, beta []float64) float64 {
	sa := floats.Sum(alpha)
	sb := floats.Sum(beta)
	la, _ := math.Lgamma(sa)
	lb, _ := math.Lgamma(sb)
	d := la - lb
	psiSA := mathext.Digamma(sa)
	for i := range alpha {
		lga, _ := math.Lgamma(alpha[i])
		lgb, _ := math.Lgamma(beta[i])
		d += lgb - lga + (alpha[i]-beta[i])*(mathext.Digamma(alpha[i])-psiSA)
	}
	return d
}

// dirichletEntropy is the differential entropy of a Dirichlet
// distribution with parameter vector alpha.
func dirichletEntropy(alpha []float64) float64 {
	a0 := floats.Sum(alpha)
	l0, _ := math.Lgamma(a0)
	h := -l0
	for _, a := range alpha {
		la, _ := math.Lgamma(a)
		h += la
	}
	k := float64(len(alpha))
	h += (a0 - k) * mathext.Digamma(a0)
	for _, a := range alpha {
		h -= (a - 1) * mathext.Digamma(a)
	}
	return h
}

// bayesianSurprise is, per position, the KL divergence between the
// Dirichlet posteriors before and after the observation, summed over
// contexts (KL is additive for independent distributions). The first
// entry has no predecessor and is NaN.
func bayesianSurprise(alphas *Alphas) []float64 {
	if len(alphas.Values) == 0 || len(alphas.Values[0]) == 0 {
		return nil
	}
	n := len(alphas.Values[0])
	out := make([]float64, n)
	out[0] = math.NaN()
	for t := 1; t < n; t++ {
		sum := 0.0
		for c := range alphas.Values {
			sum += klDirichlet(alphas.Values[c][t-1], alphas.Values[c][t])
		}
		out[t] = sum
	}
	return out
}

// posteriorEntropy is the summed Dirichlet entropy across contexts at
// each position.
func posteriorEntropy(alphas *Alphas) []float64 {
	if len(alphas.Values) == 0 || len(alphas.Values[0]) == 0 {
		return nil
	}
	n := len(alphas.Values[0])
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		sum := 0.0
		for c := range alphas.Values {
			sum += dirichletEntropy(alphas.Values[c][t])
		}
		out[t] = sum
	}
	return out
}

// confidenceCorrected applies the confidence correction of Faraji et al.
// to the raw surprise; the p-hat constant is only tabulated for alphabets
// of two or three symbols.
func confidenceCorrected(shannon, bayesian, entropy []float64, nitem int) []float64 {
	var phat float64
	switch nitem {
	case 2:
		phat = 1.0 / 2
	case 3:
		phat = 1.0 / 24
	default:
		return nil
	}
	out := make([]float64, len(shannon))
	for t := range out {
		out[t] = shannon[t] + bayesian[t] - entropy[t] + math.Log(phat)
	}
	return out
}
