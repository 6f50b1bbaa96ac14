package observer

import (
	"fmt"
	"strconv"
	"strings"

	"seqinfer/pkg/common"
)

// Pattern is an ordered tuple of order+1 symbols. The leading order
// symbols are the context, the last one the outcome.
type Pattern []common.Symbol

func (p Pattern) Context() Pattern {
	return p[:len(p)-1]
}

func (p Pattern) Outcome() common.Symbol {
	return p[len(p)-1]
}

// String encodes the pattern as comma-separated integers, e.g. "0,1".
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

// Space is the full set of transition patterns of a given order over an
// alphabet of Nitem symbols, enumerated in lexicographic order. Patterns
// sharing a context occupy Nitem contiguous indices, so sibling lookups
// are slice arithmetic rather than map accesses.
type Space struct {
	Order int
	Nitem int
	size  int
}

func NewSpace(order, nitem int) (*Space, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: order %d must be >= 0", ErrInvalidParameter, order)
	}
	if nitem < 1 {
		return nil, fmt.Errorf("%w: alphabet size %d must be >= 1", ErrInvalidParameter, nitem)
	}
	size := 1
	for i := 0; i <= order; i++ {
		size *= nitem
	}
	return &Space{Order: order, Nitem: nitem, size: size}, nil
}

// Size returns Nitem^(order+1), the number of patterns.
func (s *Space) Size() int {
	return s.size
}

// Index returns the lexicographic index of p, or -1 if p has the wrong
// length or contains a symbol outside the alphabet.
func (s *Space) Index(p Pattern) int {
	if len(p) != s.Order+1 {
		return -1
	}
	idx := 0
	for _, v := range p {
		if v < 0 || int(v) >= s.Nitem {
			return -1
		}
		idx = idx*s.Nitem + int(v)
	}
	return idx
}

// Pattern decodes index i back into its tuple.
func (s *Space) Pattern(i int) Pattern {
	p := make(Pattern, s.Order+1)
	for j := s.Order; j >= 0; j-- {
		p[j] = common.Symbol(i % s.Nitem)
		i /= s.Nitem
	}
	return p
}

// ContextIndex returns the index of p's context in the order-length
// context space, i.e. Index(p) / Nitem.
func (s *Space) ContextIndex(i int) int {
	return i / s.Nitem
}

// Contexts returns the number of distinct contexts, Nitem^order.
func (s *Space) Contexts() int {
	return s.size / s.Nitem
}

// Equal reports whether two spaces cover the same patterns.
func (s *Space) Equal(o *Space) bool {
	return o != nil && s.Order == o.Order && s.Nitem == o.Nitem
}
