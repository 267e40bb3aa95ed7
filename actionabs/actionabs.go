// Package actionabs discretizes the space of legal actions at a state into
// the small, fixed set a solver actually branches on: fold, call, and a
// handful of configured raise sizes.
package actionabs

import (
	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
)

// ActionAbstraction carries the configured raise ladder; Fold/Call are
// always candidates (subject to legality) and never configurable.
type ActionAbstraction struct {
	Raises []gamedef.AbstractRaise `json:"possible_raises"`
}

// GetActions returns the deduplicated, insertion-ordered action set legal at
// s: Fold (if legal), Call (if legal), then every configured raise mapped to
// a concrete to-amount, in Raises order, skipping duplicate to-amounts.
func (aa ActionAbstraction) GetActions(gi *gamedef.GameInfo, s *gamestate.GameState) []gamedef.Action {
	var actions []gamedef.Action

	if s.IsValidAction(gi, gamedef.FoldAction()) {
		actions = append(actions, gamedef.FoldAction())
	}
	if s.IsValidAction(gi, gamedef.CallAction()) {
		actions = append(actions, gamedef.CallAction())
	}

	seen := make(map[uint32]bool)
	for _, ar := range aa.Raises {
		a, ok := s.AbstractRaiseToReal(gi, ar)
		if !ok {
			continue
		}
		if seen[a.Amount] {
			continue
		}
		seen[a.Amount] = true
		actions = append(actions, a)
	}

	return actions
}
