// Package tree holds the persistent, lazily-grown game tree a solver walks
// repeatedly across billions of traversals: a dense NodeId-indexed NodeStore
// plus the AbstractGame façade that is the tree's sole mutator.
package tree

import (
	"encoding/gob"
	"fmt"
	"io"
	"sync"

	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
)

// NodeId identifies a node by its index into NodeStore.nodes. The root is
// always NodeId 0.
type NodeId uint32

// Node is one point in the abstracted game tree: the GameState reached to
// get here, plus the lazily-populated map of children already visited.
type Node struct {
	State    gamestate.GameState
	Children map[gamedef.Action]NodeId
}

// NodeStore is a monotonically-growing, never-shrinking table of Nodes.
// Concurrent traversals only ever append (through AbstractGame) or read; the
// mutex protects the slice header and the children maps it may still be
// growing.
type NodeStore struct {
	mu    sync.RWMutex
	nodes []Node
}

// NewNodeStore creates a store containing only the root node.
func NewNodeStore(root gamestate.GameState) *NodeStore {
	return &NodeStore{
		nodes: []Node{{State: root, Children: make(map[gamedef.Action]NodeId)}},
	}
}

// Root is always NodeId 0.
func (ns *NodeStore) Root() NodeId { return 0 }

// Get returns a copy of the node's GameState. The returned Node's Children
// field is always nil: that map is mutated concurrently by childOrCreate, so
// it must never be read outside ns.mu. Use ChildId to look up a child.
func (ns *NodeStore) Get(id NodeId) Node {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return Node{State: ns.nodes[id].State}
}

// ChildId looks up the child of id reached by action, if it has already been
// materialized, while holding NodeStore's read lock — the only safe way to
// observe the Children map, since childOrCreate mutates it under the write
// lock concurrently with other traversals.
func (ns *NodeStore) ChildId(id NodeId, action gamedef.Action) (NodeId, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	childId, ok := ns.nodes[id].Children[action]
	return childId, ok
}

// Len reports how many nodes have been materialized so far.
func (ns *NodeStore) Len() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return len(ns.nodes)
}

// childOrCreate returns the existing child for (id, action) if present,
// otherwise appends a new node for childState and installs it.
func (ns *NodeStore) childOrCreate(id NodeId, action gamedef.Action, childState gamestate.GameState) NodeId {
	ns.mu.Lock()
	defer ns.mu.Unlock()

	if existing, ok := ns.nodes[id].Children[action]; ok {
		return existing
	}
	newId := NodeId(len(ns.nodes))
	ns.nodes = append(ns.nodes, Node{State: childState, Children: make(map[gamedef.Action]NodeId)})
	ns.nodes[id].Children[action] = newId
	return newId
}

// persistedNode is the gob-stable encoding of a Node: Children keyed by
// Action is reshaped to a parallel-slice form since gob cannot encode a map
// keyed by a struct containing no exported methods it needs reliably across
// versions as cleanly as two slices.
type persistedNode struct {
	State        gamestate.GameState
	ChildActions []gamedef.Action
	ChildIds     []NodeId
}

// Save writes the entire node table to w via encoding/gob.
func (ns *NodeStore) Save(w io.Writer) error {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	out := make([]persistedNode, len(ns.nodes))
	for i, n := range ns.nodes {
		pn := persistedNode{State: n.State}
		for a, id := range n.Children {
			pn.ChildActions = append(pn.ChildActions, a)
			pn.ChildIds = append(pn.ChildIds, id)
		}
		out[i] = pn
	}
	if err := gob.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("tree: encode node store: %w", err)
	}
	return nil
}

// LoadNodeStore reconstructs a NodeStore previously written by Save.
func LoadNodeStore(r io.Reader) (*NodeStore, error) {
	var in []persistedNode
	if err := gob.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("tree: decode node store: %w", err)
	}
	nodes := make([]Node, len(in))
	for i, pn := range in {
		children := make(map[gamedef.Action]NodeId, len(pn.ChildActions))
		for j, a := range pn.ChildActions {
			children[a] = pn.ChildIds[j]
		}
		nodes[i] = Node{State: pn.State, Children: children}
	}
	return &NodeStore{nodes: nodes}, nil
}
