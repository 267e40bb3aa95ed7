package evaluator

import (
	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
)

// Select picks the hand-evaluator oracle matching gi's deck shape:
// HoldemEvaluator for a standard 13-rank/4-suit deck, HighCardEvaluator for
// the small synthetic decks used by Kuhn- and Leduc-shaped games.
func Select(gi *gamedef.GameInfo) gamestate.HandRanker {
	if gi.NumRanks() == 13 && gi.NumSuits() == 4 {
		return HoldemEvaluator{}
	}
	return HighCardEvaluator{}
}
