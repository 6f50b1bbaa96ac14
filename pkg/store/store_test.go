package store

import (
	"math"
	"path/filepath"
	"testing"

	"seqinfer/pkg/common"
	"seqinfer/pkg/observer"
)

func testRun(t *testing.T) (*common.Run, *observer.Estimate) {
	t.Helper()
	seq := common.Sequence{0, 1, 0, 1, 0, 1}
	res, err := observer.Infer(seq, observer.Options{Order: 1})
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	run := &common.Run{
		Order:       1,
		Nitem:       2,
		Policy:      common.PolicyCumulative,
		PriorWeight: 1,
		Seq:         seq,
	}
	return run, res.Posterior
}

func TestSaveAndLoadRun(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	run, est := testRun(t)
	id, err := st.SaveRun(run, est)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id != run.ID || id == 0 {
		t.Fatalf("id=%d run.ID=%d", id, run.ID)
	}

	// first load hits the recent-run index
	got, err := st.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if st.Stats().CacheHitCount != 1 {
		t.Errorf("cache hits: %d, want 1", st.Stats().CacheHitCount)
	}
	if got.Order != 1 || got.Nitem != 2 || got.Policy != common.PolicyCumulative {
		t.Errorf("loaded run: %s", got)
	}
	if got.Seq.String() != "0,1,0,1,0,1" {
		t.Errorf("loaded seq: %s", got.Seq)
	}
}

func TestLoadRunFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run, est := testRun(t)
	id, err := st.SaveRun(run, est)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	st.Close()

	// a fresh store has an empty index and must read sqlite
	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()
	got, err := st2.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if st2.Stats().CacheHitCount != 0 {
		t.Errorf("cache hits on cold index: %d", st2.Stats().CacheHitCount)
	}
	if got.Seq.String() != run.Seq.String() {
		t.Errorf("seq: %s, want %s", got.Seq, run.Seq)
	}
	if _, err := st2.LoadRun(999); err == nil {
		t.Error("missing run: expected error")
	}
}

func TestEstimatesRoundTrip(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	run, est := testRun(t)
	id, err := st.SaveRun(run, est)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	rows, err := st.Estimates(id, "")
	if err != nil {
		t.Fatalf("Estimates: %v", err)
	}
	if len(rows) != 4*6 {
		t.Fatalf("rows: %d, want 24", len(rows))
	}

	rows, err = st.Estimates(id, "0,1")
	if err != nil {
		t.Fatalf("Estimates: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("filtered rows: %d, want 6", len(rows))
	}
	last := rows[len(rows)-1]
	if math.Abs(last.Mean-0.8) > 1e-12 {
		t.Errorf("stored mean: %g, want 0.8", last.Mean)
	}
	// the t=0 MAP is an indeterminate form and round-trips as NaN
	if !math.IsNaN(rows[0].MAP) {
		t.Errorf("stored indeterminate MAP: %g, want NaN", rows[0].MAP)
	}
}

func TestListRuns(t *testing.T) {
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	for i := 0; i < 3; i++ {
		run, est := testRun(t)
		if _, err := st.SaveRun(run, est); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	var ids []int64
	err = st.ListRuns(func(run *common.Run) bool {
		ids = append(ids, run.ID)
		return true
	})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("listed %d runs", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not ascending: %v", ids)
		}
	}

	// early stop
	n := 0
	st.ListRuns(func(run *common.Run) bool {
		n++
		return false
	})
	if n != 1 {
		t.Errorf("early stop visited %d runs", n)
	}
}

func TestRunIndex(t *testing.T) {
	idx := NewRunIndex(2)
	for i := int64(3); i >= 1; i-- {
		idx.Put(&common.Run{ID: i})
	}
	if idx.Count() != 3 {
		t.Fatalf("count: %d", idx.Count())
	}
	if _, ok := idx.Get(2); !ok {
		t.Fatal("missing run 2")
	}
	if _, ok := idx.Get(9); ok {
		t.Fatal("unexpected run 9")
	}
	var order []int64
	idx.Iterator(func(run *common.Run) bool {
		order = append(order, run.ID)
		return true
	})
	if len(order) != 3 || order[0] != 1 || order[2] != 3 {
		t.Errorf("iteration order: %v", order)
	}
}
