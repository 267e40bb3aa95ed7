// Package solver is the MCCFR training loop: sharded regret/average-strategy
// tables keyed by (node, bucket), regret-matching, external-sampling
// traversal with negative-regret pruning, and linear-CFR discounting.
package solver

import (
	"sync"

	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/tree"
)

// TableKey identifies one information set: a tree node paired with the
// card bucket the acting player holds there.
type TableKey struct {
	Node   tree.NodeId
	Bucket cardabs.BucketId
}

// Entry is one action-indexed int32 vector, lazily sized to the number of
// legal actions at its node on first touch.
type Entry struct {
	mu     sync.Mutex
	values []int32
}

func (e *Entry) ensureSize(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.values) >= n {
		return
	}
	e.values = append(e.values, make([]int32, n-len(e.values))...)
}

// Get returns a copy of the current values.
func (e *Entry) Get() []int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int32(nil), e.values...)
}

// Add adds delta[a] to values[a] for every action index.
func (e *Entry) Add(delta []int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, d := range delta {
		e.values[i] += d
	}
}

// Increment adds 1 to values[action].
func (e *Entry) Increment(action int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[action]++
}

// Discount multiplies every value by d, rounding to the nearest integer.
func (e *Entry) Discount(d float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, v := range e.values {
		e.values[i] = int32(roundHalfAwayFromZero(float64(v) * d))
	}
}

const tableShardCount = 64
const tableShardMask = tableShardCount - 1

type shard struct {
	mu      sync.RWMutex
	entries map[TableKey]*Entry
}

// Table is a sharded, thread-safe map from TableKey to Entry: the shared
// shape behind both the Regrets table and the average-Strategy table.
type Table struct {
	shards [tableShardCount]shard
}

// NewTable returns an empty table ready for concurrent use.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].entries = make(map[TableKey]*Entry)
	}
	return t
}

// Get returns the entry for key, creating a zero-valued one sized to
// actionCount if absent.
func (t *Table) Get(key TableKey, actionCount int) *Entry {
	s := t.shardFor(key)

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		e.ensureSize(actionCount)
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[key]; ok {
		e.ensureSize(actionCount)
		return e
	}
	e = &Entry{values: make([]int32, actionCount)}
	s.entries[key] = e
	return e
}

// ForEach calls fn for every (key, entry) pair currently stored. Used by
// discounting and by persistence; fn must not mutate the table.
func (t *Table) ForEach(fn func(TableKey, *Entry)) {
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		for k, e := range s.entries {
			fn(k, e)
		}
		s.mu.RUnlock()
	}
}

// Size returns the number of information sets tracked.
func (t *Table) Size() int {
	total := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

func (t *Table) shardFor(key TableKey) *shard {
	h := uint32(key.Node)*2654435761 ^ uint32(key.Bucket)
	return &t.shards[h&tableShardMask]
}

func roundHalfAwayFromZero(x float64) float64 {
	if x < 0 {
		return -roundHalfAwayFromZero(-x)
	}
	return float64(int64(x + 0.5))
}
