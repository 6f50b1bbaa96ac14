package observer

import "fmt"

// Prior holds one Dirichlet pseudo-count per transition pattern, indexed
// by the pattern's lexicographic position in its Space.
type Prior struct {
	Space  *Space
	Weight []float64
}

// SymmetricPrior assigns the same pseudo-count to every pattern of the
// given order over an alphabet of nitem symbols.
func SymmetricPrior(order, nitem int, weight float64) (*Prior, error) {
	if weight < 0 {
		return nil, fmt.Errorf("%w: prior weight %g must be >= 0", ErrInvalidParameter, weight)
	}
	space, err := NewSpace(order, nitem)
	if err != nil {
		return nil, err
	}
	w := make([]float64, space.Size())
	for i := range w {
		w[i] = weight
	}
	return &Prior{Space: space, Weight: w}, nil
}

// For returns the pseudo-count of pattern p, or 0 and false if p is not
// in the pattern space.
func (pr *Prior) For(p Pattern) (float64, bool) {
	i := pr.Space.Index(p)
	if i < 0 {
		return 0, false
	}
	return pr.Weight[i], true
}
