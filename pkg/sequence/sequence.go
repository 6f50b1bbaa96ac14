package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seqinfer/pkg/common"
)

// Parse decodes a sequence written as non-negative integers separated by
// commas and/or whitespace, e.g. "0,1,0,1" or "0 1 0 1".
func Parse(s string) (common.Sequence, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, errors.New("empty sequence")
	}
	seq := make(common.Sequence, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid symbol %q: expected a non-negative integer", f)
		}
		seq = append(seq, common.Symbol(v))
	}
	return seq, nil
}

// Convert re-encodes arbitrary labels onto the dense alphabet 0..K-1, in
// order of first appearance, and returns the label table so results can
// be mapped back.
func Convert(labels []string) (common.Sequence, []string) {
	index := make(map[string]common.Symbol, 4)
	table := make([]string, 0, 4)
	seq := make(common.Sequence, len(labels))
	for i, l := range labels {
		sym, ok := index[l]
		if !ok {
			sym = common.Symbol(len(table))
			index[l] = sym
			table = append(table, l)
		}
		seq[i] = sym
	}
	return seq, table
}
