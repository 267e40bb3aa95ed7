package solver

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/tree"
)

// Blueprint is the persisted training artifact: the average strategy table,
// keyed by node ids of a NodeStore that the caller saves separately via
// tree.NodeStore.Save. Regrets are not
// persisted: they are a training-time-only accumulator the average
// strategy is derived from.
type Blueprint struct {
	Version     int
	GeneratedAt time.Time
	Iterations  int
	Entries     map[persistKey]persistEntry
}

type persistKey struct {
	Node   uint32
	Bucket uint32
}

type persistEntry struct {
	Values []int32
}

// SnapshotStrategy captures the current average-strategy table into a
// Blueprint ready for persistence.
func SnapshotStrategy(strategy *Table) *Blueprint {
	bp := &Blueprint{Entries: make(map[persistKey]persistEntry)}
	strategy.ForEach(func(k TableKey, e *Entry) {
		bp.Entries[persistKey{Node: uint32(k.Node), Bucket: uint32(k.Bucket)}] = persistEntry{Values: e.Get()}
	})
	return bp
}

// Restore rebuilds a live Table from a Blueprint.
func (bp *Blueprint) Restore() *Table {
	t := NewTable()
	for k, v := range bp.Entries {
		key := TableKey{Node: tree.NodeId(k.Node), Bucket: cardabs.BucketId(k.Bucket)}
		entry := t.Get(key, len(v.Values))
		entry.Add(v.Values)
	}
	return t
}

// SaveBlueprintFile writes bp to path via an atomic temp-file-plus-rename,
// so a crash mid-write never leaves a corrupt strategy file behind.
func SaveBlueprintFile(bp *Blueprint, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("solver: create strategy dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("solver: create strategy temp file: %w", err)
	}
	if err := gob.NewEncoder(tmp).Encode(bp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("solver: encode strategy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("solver: close strategy temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("solver: persist strategy file: %w", err)
	}
	return nil
}

// LoadBlueprintFile reads a Blueprint previously written by SaveBlueprintFile.
func LoadBlueprintFile(path string) (*Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("solver: open strategy file: %w", err)
	}
	defer f.Close()

	var bp Blueprint
	if err := gob.NewDecoder(f).Decode(&bp); err != nil {
		return nil, fmt.Errorf("solver: decode strategy file: %w", err)
	}
	return &bp, nil
}
