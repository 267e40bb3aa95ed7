package gamestate

import (
	"sort"

	"github.com/mccfr/abstractsolver/gamedef"
)

// HandRanker evaluates a showdown hand strength; higher is better. Ties
// share a rank. Implemented by evaluator.HoldemEvaluator and
// evaluator.HighCardEvaluator.
type HandRanker interface {
	Rank(hole []gamedef.Card, board []gamedef.Card) int
}

// GetPayout returns each player's net chip result for a finished hand: the
// sum is always zero. With a single non-folded player it is a walkover; with
// multiple it resolves a showdown with side-pot partitioning, grounded on
// the tiered all-in settlement the betting engine already performs.
//
// board and hole are passed explicitly rather than read from s: a CFR
// traversal reuses the same abstract-history tree across many independent
// deals, so the concrete cards in play live with the traversal, not with the
// node. Callers that keep a single fixed deal per GameState (e.g. PlayLoop)
// simply pass s.Board and s.Hole.
func (s *GameState) GetPayout(ranker HandRanker, board []gamedef.Card, hole [][]gamedef.Card) []int64 {
	n := len(s.Stack)
	payout := make([]int64, n)

	winner := -1
	nonFolded := 0
	for i, f := range s.Folded {
		if !f {
			nonFolded++
			winner = i
		}
	}

	if nonFolded == 1 {
		for i := 0; i < n; i++ {
			if i == winner {
				continue
			}
			payout[i] = -int64(s.Spent[i])
			payout[winner] += int64(s.Spent[i])
		}
		return payout
	}

	levels := distinctLevels(s.Spent)
	prev := uint32(0)
	for _, cap := range levels {
		tier := int64(0)
		var eligible []int
		for i := 0; i < n; i++ {
			contrib := s.Spent[i]
			amt := contrib
			if amt > cap {
				amt = cap
			}
			if amt > prev {
				tier += int64(amt - prev)
			}
			if !s.Folded[i] && contrib >= cap {
				eligible = append(eligible, i)
			}
		}
		if tier > 0 && len(eligible) > 0 {
			winners := bestRanked(ranker, eligible, hole, board)
			share := tier / int64(len(winners))
			remainder := tier % int64(len(winners))
			for idx, p := range winners {
				payout[p] += share
				if int64(idx) < remainder {
					payout[p]++
				}
			}
		}
		prev = cap
	}
	for i := 0; i < n; i++ {
		payout[i] -= int64(s.Spent[i])
	}
	return payout
}

func distinctLevels(spent []uint32) []uint32 {
	seen := make(map[uint32]bool)
	var levels []uint32
	for _, v := range spent {
		if v > 0 && !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

func bestRanked(ranker HandRanker, eligible []int, hole [][]gamedef.Card, board []gamedef.Card) []int {
	haveBest := false
	best := 0
	var winners []int
	for _, p := range eligible {
		r := ranker.Rank(hole[p], board)
		switch {
		case !haveBest || r > best:
			haveBest = true
			best = r
			winners = []int{p}
		case r == best:
			winners = append(winners, p)
		}
	}
	return winners
}
