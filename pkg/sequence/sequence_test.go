package sequence

import (
	"math/rand"
	"testing"

	"seqinfer/pkg/common"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want common.Sequence
		err  bool
	}{
		{"0,1,0,1", common.Sequence{0, 1, 0, 1}, false},
		{"0 1 2", common.Sequence{0, 1, 2}, false},
		{" 0,\n1 ,2 ", common.Sequence{0, 1, 2}, false},
		{"3", common.Sequence{3}, false},
		{"", nil, true},
		{"  ,  ", nil, true},
		{"0,x,1", nil, true},
		{"0,-1", nil, true},
		{"0,1.5", nil, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestConvert(t *testing.T) {
	seq, table := Convert([]string{"b", "a", "b", "c", "a"})
	want := common.Sequence{0, 1, 0, 2, 1}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("Convert = %v, want %v", seq, want)
		}
	}
	if len(table) != 3 || table[0] != "b" || table[1] != "a" || table[2] != "c" {
		t.Errorf("label table = %v", table)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// absorbing transitions: whatever starts, the next symbol is fixed
	trans := [][]float64{
		{0, 1},
		{0, 1},
	}
	seq, err := Generate(rng, trans, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 10 {
		t.Fatalf("length %d", len(seq))
	}
	for _, v := range seq[1:] {
		if v != 1 {
			t.Fatalf("expected all 1 after the start: %v", seq)
		}
	}
}

func TestGenerateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	trans := [][]float64{
		{0.5, 0.3, 0.2},
		{0.1, 0.1, 0.8},
		{0.4, 0.4, 0.2},
	}
	seq, err := Generate(rng, trans, 500)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range seq {
		if v < 0 || v > 2 {
			t.Fatalf("symbol %d out of alphabet", v)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Generate(rng, nil, 5); err == nil {
		t.Error("empty matrix: expected error")
	}
	if _, err := Generate(rng, [][]float64{{1, 0}, {1}}, 5); err == nil {
		t.Error("ragged matrix: expected error")
	}
	seq, err := Generate(rng, [][]float64{{1}}, 0)
	if err != nil || len(seq) != 0 {
		t.Errorf("n=0: seq=%v err=%v", seq, err)
	}
}
