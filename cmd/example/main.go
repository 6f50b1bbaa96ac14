package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"seqinfer/pkg/observer"
	"seqinfer/pkg/sequence"
)

func main() {
	rng := rand.New(rand.NewSource(42))

	// A sticky two-symbol source: each symbol tends to repeat.
	trans := [][]float64{
		{0.8, 0.2},
		{0.3, 0.7},
	}
	seq, err := sequence.Generate(rng, trans, 200)
	if err != nil {
		log.Fatalf("Generate failed: %v", err)
	}
	fmt.Printf("Generated %d observations\n", len(seq))

	start := time.Now()
	res, err := observer.Infer(seq, observer.Options{Order: 1, Decay: 16})
	if err != nil {
		log.Fatalf("Infer failed: %v", err)
	}
	fmt.Printf("Inference done in %v\n", time.Since(start))

	last := len(seq) - 1
	for i := 0; i < res.Count.Space.Size(); i++ {
		p := res.Count.Space.Pattern(i)
		fmt.Printf("p(%d | %s) = %.3f +/- %.3f (true %.1f)\n",
			p.Outcome(), p.Context(), res.Posterior.Mean[i][last], res.Posterior.SD[i][last],
			trans[p.Context()[0]][p.Outcome()])
	}

	fmt.Printf("Mean surprise over the last 50 observations: %.3f bits\n", tailMean(res.Surprise, 50))
}

func tailMean(xs []float64, n int) float64 {
	if n > len(xs) {
		n = len(xs)
	}
	sum := 0.0
	for _, v := range xs[len(xs)-n:] {
		sum += v
	}
	return sum / float64(n)
}
