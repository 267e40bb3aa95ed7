package solver

import (
	"math/rand"

	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
	"github.com/mccfr/abstractsolver/tree"
)

// Exploitability estimates, for each seat, the expected value a best
// responder in that seat obtains while every other seat keeps playing the
// trained average strategy. It is a Monte Carlo best response: the
// card deal is sampled (the card tree is too large to enumerate exactly on
// a full deck), but for each sampled deal the action subtree is walked
// exactly, so the only approximation is over the deal, not over play.
func Exploitability(game *tree.AbstractGame, evaluator gamestate.HandRanker, strategy *Table, rng *rand.Rand, samples int) []float64 {
	gi := game.GameInfo
	totals := make([]float64, gi.NumPlayers())
	if samples <= 0 {
		return totals
	}

	for s := 0; s < samples; s++ {
		deal := gi.DealHoleCardsAndBoardCards(rng)
		boardI := gi.TotalBoardCards(0)
		for p := 0; p < gi.NumPlayers(); p++ {
			totals[p] += bestResponseValue(game, evaluator, strategy, game.NodeStore.Root(), deal.Board, boardI, deal.HoleCards, p)
		}
	}

	for p := range totals {
		totals[p] /= float64(samples)
	}
	return totals
}

// bestResponseValue returns the value to player at id when player always
// picks the action maximizing its own value and every other seat follows
// the trained average strategy (falling back to uniform play at any
// information set the strategy never visited).
func bestResponseValue(game *tree.AbstractGame, evaluator gamestate.HandRanker, strategy *Table, id tree.NodeId, board []gamedef.Card, boardI int, hole [][]gamedef.Card, player int) float64 {
	state := game.State(id)
	if state.Finished || state.Folded[player] {
		payout := state.GetPayout(evaluator, board, hole)
		return float64(payout[player])
	}

	actions := game.GetActions(id)
	if len(actions) == 0 {
		payout := state.GetPayout(evaluator, board, hole)
		return float64(payout[player])
	}

	if state.ActivePlayer == player {
		best := 0.0
		for i, a := range actions {
			childBoardI := boardI
			childId, err := game.ApplyActionToNode(id, &childBoardI, a)
			if err != nil {
				continue
			}
			v := bestResponseValue(game, evaluator, strategy, childId, board, childBoardI, hole, player)
			if i == 0 || v > best {
				best = v
			}
		}
		return best
	}

	bucket := game.GetBucket(state.Round, board[:boardI], hole[state.ActivePlayer])
	entry := strategy.Get(TableKey{Node: id, Bucket: bucket}, len(actions))
	sigma := NormalizeStrategy(entry.Get())

	expected := 0.0
	for i, a := range actions {
		if sigma[i] == 0 {
			continue
		}
		childBoardI := boardI
		childId, err := game.ApplyActionToNode(id, &childBoardI, a)
		if err != nil {
			continue
		}
		v := bestResponseValue(game, evaluator, strategy, childId, board, childBoardI, hole, player)
		expected += sigma[i] * v
	}
	return expected
}
