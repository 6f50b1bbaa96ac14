package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Symbol is one element of the finite alphabet, a small non-negative
// integer in [0, Nitem). By convention a value equal to Nitem marks a
// pause in the stimulus stream; it never matches any transition pattern.
type Symbol int

// Sequence is an ordered run of observed symbols.
type Sequence []Symbol

// String encodes the sequence as comma-separated integers.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

// Distinct returns the number of distinct symbol values in the sequence.
func (s Sequence) Distinct() int {
	seen := make(map[Symbol]struct{}, 4)
	for _, v := range s {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Policy selects how past evidence is weighted when counting patterns.
type Policy int

const (
	PolicyCumulative Policy = iota
	PolicyDecay
	PolicyWindow
)

func (p Policy) String() string {
	switch p {
	case PolicyCumulative:
		return "cumulative"
	case PolicyDecay:
		return "decay"
	case PolicyWindow:
		return "window"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// Run records the parameters of one inference invocation.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	Order       int
	Nitem       int
	Policy      Policy
	Decay       float64
	Window      int
	PriorWeight float64
	Seq         Sequence
}

// String 方便调试打印
func (r *Run) String() string {
	return fmt.Sprintf("Run{ID: %d, Order: %d, Nitem: %d, Policy: %s, SeqLen: %d}",
		r.ID, r.Order, r.Nitem, r.Policy, len(r.Seq))
}
