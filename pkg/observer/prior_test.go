package observer

import (
	"errors"
	"testing"
)

func TestSymmetricPrior(t *testing.T) {
	tests := []struct {
		order  int
		nitem  int
		weight float64
		size   int
	}{
		{0, 2, 1, 2},
		{1, 2, 1, 4},
		{2, 3, 0.5, 27},
		{0, 1, 2, 1},
		{3, 2, 0, 16}, // zero weight is a valid (improper) prior
	}
	for _, tt := range tests {
		pr, err := SymmetricPrior(tt.order, tt.nitem, tt.weight)
		if err != nil {
			t.Fatalf("SymmetricPrior(%d, %d, %g): %v", tt.order, tt.nitem, tt.weight, err)
		}
		if len(pr.Weight) != tt.size {
			t.Errorf("SymmetricPrior(%d, %d, %g): %d entries, want %d",
				tt.order, tt.nitem, tt.weight, len(pr.Weight), tt.size)
		}
		for i, w := range pr.Weight {
			if w != tt.weight {
				t.Errorf("entry %d: weight=%g, want %g", i, w, tt.weight)
				break
			}
		}
	}
}

func TestSymmetricPriorErrors(t *testing.T) {
	if _, err := SymmetricPrior(0, 2, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative weight: got %v", err)
	}
	if _, err := SymmetricPrior(-1, 2, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative order: got %v", err)
	}
	if _, err := SymmetricPrior(0, 0, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty alphabet: got %v", err)
	}
}

func TestPriorFor(t *testing.T) {
	pr, _ := SymmetricPrior(1, 2, 0.5)
	if w, ok := pr.For(Pattern{0, 1}); !ok || w != 0.5 {
		t.Errorf("For(0,1) = %g, %v", w, ok)
	}
	if _, ok := pr.For(Pattern{0, 2}); ok {
		t.Error("For(0,2) should miss")
	}
}
