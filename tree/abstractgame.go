package tree

import (
	"github.com/mccfr/abstractsolver/actionabs"
	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
)

// AbstractGame is the single mutator façade over a NodeStore: every node
// creation in a traversal goes through ApplyActionToNode, so the store never
// gains a node outside the rules GameInfo/ActionAbstraction describe.
type AbstractGame struct {
	GameInfo  *gamedef.GameInfo
	Actions   actionabs.ActionAbstraction
	Cards     cardabs.CardAbstraction
	NodeStore *NodeStore
}

// NewAbstractGame builds a fresh tree containing only the root for a newly
// dealt hand.
func NewAbstractGame(gi *gamedef.GameInfo, aa actionabs.ActionAbstraction, ca cardabs.CardAbstraction, root gamestate.GameState) *AbstractGame {
	return &AbstractGame{
		GameInfo:  gi,
		Actions:   aa,
		Cards:     ca,
		NodeStore: NewNodeStore(root),
	}
}

// ApplyActionToNode returns the child of id reached by action, materializing
// it on first visit, and updates boardCardsI to the count of board cards
// visible to the traversal at the child's round.
func (g *AbstractGame) ApplyActionToNode(id NodeId, boardCardsI *int, action gamedef.Action) (NodeId, error) {
	parent := g.NodeStore.Get(id)

	if childId, ok := g.NodeStore.ChildId(id, action); ok {
		child := g.NodeStore.Get(childId)
		*boardCardsI = g.GameInfo.TotalBoardCards(child.State.Round)
		return childId, nil
	}

	childState, err := parent.State.ApplyAction(g.GameInfo, action)
	if err != nil {
		return 0, err
	}
	childId := g.NodeStore.childOrCreate(id, action, childState)
	*boardCardsI = g.GameInfo.TotalBoardCards(childState.Round)
	return childId, nil
}

// GetBucket delegates to the configured CardAbstraction.
func (g *AbstractGame) GetBucket(round int, board []gamedef.Card, hole []gamedef.Card) cardabs.BucketId {
	return g.Cards.GetBucket(g.GameInfo, round, board, hole)
}

// GetActions delegates to the configured ActionAbstraction for the state at id.
func (g *AbstractGame) GetActions(id NodeId) []gamedef.Action {
	node := g.NodeStore.Get(id)
	return g.Actions.GetActions(g.GameInfo, &node.State)
}

// State returns the GameState reached at id.
func (g *AbstractGame) State(id NodeId) gamestate.GameState {
	return g.NodeStore.Get(id).State
}
