package store

import (
	"sync"

	"github.com/google/btree"

	"seqinfer/pkg/common"
)

type runItem struct {
	ID  int64
	Run *common.Run
}

func (i runItem) Less(than btree.Item) bool {
	return i.ID < than.(runItem).ID
}

// RunIndex keeps recently touched runs in memory, ordered by id.
type RunIndex struct {
	tree *btree.BTree
	lock sync.RWMutex
}

func NewRunIndex(degree int) *RunIndex {
	return &RunIndex{
		tree: btree.New(degree),
	}
}

func (ri *RunIndex) Put(run *common.Run) {
	ri.lock.Lock()
	defer ri.lock.Unlock()

	ri.tree.ReplaceOrInsert(runItem{ID: run.ID, Run: run})
}

func (ri *RunIndex) Get(id int64) (*common.Run, bool) {
	ri.lock.RLock()
	defer ri.lock.RUnlock()

	res := ri.tree.Get(runItem{ID: id})
	if res == nil {
		return nil, false
	}
	return res.(runItem).Run, true
}

func (ri *RunIndex) Iterator(fn func(run *common.Run) bool) {
	ri.lock.RLock()
	defer ri.lock.RUnlock()

	ri.tree.Ascend(func(i btree.Item) bool {
		return fn(i.(runItem).Run)
	})
}

func (ri *RunIndex) Count() int {
	ri.lock.RLock()
	defer ri.lock.RUnlock()
	return ri.tree.Len()
}
