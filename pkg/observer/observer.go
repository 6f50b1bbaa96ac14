// Package observer performs online Bayesian inference of transition
// probabilities in a discrete symbol sequence, assuming the generative
// probabilities are stationary. Evidence is accumulated under one of
// three temporal-weighting policies (full history, leaky decay, sliding
// window) and combined with a Dirichlet conjugate prior into closed-form
// posterior summaries at every position.
package observer

import (
	"fmt"

	"seqinfer/pkg/common"
)

// Options configures a full inference pass. Zero values select defaults:
// alphabet size inferred from the sequence, symmetric prior of weight 1,
// cumulative counting.
type Options struct {
	Order       int
	Nitem       int
	PriorWeight float64
	CustomPrior *Prior
	Decay       float64
	Window      int
}

// Result bundles everything the observer derives from one sequence.
type Result struct {
	Count     *CountSeries
	Posterior *Estimate
	Alphas    *Alphas

	// Surprise is the Shannon surprise of each observation under the
	// one-step-ahead prediction. Bayesian is the KL divergence between
	// successive posteriors. ConfCorrected is the confidence-corrected
	// surprise (nil unless the alphabet has 2 or 3 symbols).
	Surprise      []float64
	Bayesian      []float64
	ConfCorrected []float64

	// Predictions is nil unless the alphabet is binary.
	Predictions *Predictions
}

// Infer runs the full observer over seq: prior, counts, posterior, and
// the derived surprise and prediction series.
func Infer(seq common.Sequence, opt Options) (*Result, error) {
	nitem := opt.Nitem
	if nitem == 0 {
		nitem = seq.Distinct()
	}

	prior := opt.CustomPrior
	if prior == nil {
		weight := opt.PriorWeight
		if weight == 0 {
			weight = 1
		}
		var err error
		prior, err = SymmetricPrior(opt.Order, nitem, weight)
		if err != nil {
			return nil, err
		}
	} else if prior.Space.Order != opt.Order || prior.Space.Nitem != nitem {
		return nil, fmt.Errorf("%w: custom prior space (order=%d nitem=%d) does not match options (order=%d nitem=%d)",
			ErrInvalidState, prior.Space.Order, prior.Space.Nitem, opt.Order, nitem)
	}

	count, err := CountPatterns(seq, opt.Order, CountOptions{
		Nitem:  nitem,
		Decay:  opt.Decay,
		Window: opt.Window,
	})
	if err != nil {
		return nil, err
	}

	est, err := EstimatePosterior(count, prior)
	if err != nil {
		return nil, err
	}

	alphas := dirichletAlphas(count, prior)
	shannon := shannonSurprise(seq, est)
	bayes := bayesianSurprise(alphas)
	entropy := posteriorEntropy(alphas)

	res := &Result{
		Count:       count,
		Posterior:   est,
		Alphas:      alphas,
		Surprise:    shannon,
		Bayesian:    bayes,
		Predictions: predict(seq, est, prior),
	}
	if bayes != nil && entropy != nil {
		res.ConfCorrected = confidenceCorrected(shannon, bayes, entropy, nitem)
	}
	return res, nil
}
