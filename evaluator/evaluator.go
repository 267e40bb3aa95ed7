package evaluator

import "github.com/mccfr/abstractsolver/gamedef"

// HoldemEvaluator ranks 7-card (2 hole + 5 board) hands drawn from a
// standard 13-rank, 4-suit deck. Only valid for a GameInfo configured with
// NumRanks=13, NumSuits=4 and exactly 7 hole+board cards: Evaluate7 ranks
// any other card count as 0.
type HoldemEvaluator struct{}

// Rank implements gamestate.HandRanker.
func (HoldemEvaluator) Rank(hole []gamedef.Card, board []gamedef.Card) int {
	all := make([]gamedef.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	return int(Evaluate7(NewHand(13, all...)))
}

// HighCardEvaluator is a minimal generic hand comparator for small synthetic
// games (Kuhn, Leduc) where a full 5-card-poker evaluator doesn't apply: the
// showdown winner is whoever holds the single highest card rank, except that
// a hole card paired with the board beats every unpaired hand. Suitable only for
// games with very few cards, matching the games CardAbstraction.NoBuckets
// also targets.
type HighCardEvaluator struct{}

// Rank implements gamestate.HandRanker. Pair-with-board outranks any
// unpaired high card; within each tier, higher rank wins.
func (HighCardEvaluator) Rank(hole []gamedef.Card, board []gamedef.Card) int {
	best := 0
	for _, c := range hole {
		if int(c.Rank) > best {
			best = int(c.Rank)
		}
	}
	pairBonus := 0
	for _, h := range hole {
		for _, b := range board {
			if h.Rank == b.Rank {
				pairBonus = 1000
			}
		}
	}
	return pairBonus + best
}
