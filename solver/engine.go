package solver

import (
	"math/rand"

	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
	"github.com/mccfr/abstractsolver/tree"
)

// PruneThreshold is the negative-regret floor below which an action is
// skipped entirely during traverse_mccfr_p.
const PruneThreshold int32 = -300_000_000

// Config carries the parameters of the outer training loop that aren't
// already owned by the game/abstraction layers.
type Config struct {
	// RoundsUpdateAverageStrategy bounds update_strategy to early rounds: it
	// recurses no further than this round index.
	RoundsUpdateAverageStrategy uint8 `json:"rounds_update_average_strategy"`
}

// Engine is the MCCFR training loop: it borrows an AbstractGame and owns the
// regret and average-strategy tables, the hand evaluator, and the
// process-local RNG used for every deal and action sample. An Engine's own
// methods run on the calling goroutine; RunParallel is the only code in this
// package that runs several Engines concurrently over shared tables.
type Engine struct {
	Game      *tree.AbstractGame
	Strategy  *Table
	Regrets   *Table
	Evaluator gamestate.HandRanker
	Config    Config
	RNG       *rand.Rand
}

// NewEngine wires a freshly built tree/tables into a ready-to-train engine.
func NewEngine(game *tree.AbstractGame, evaluator gamestate.HandRanker, cfg Config, rng *rand.Rand) *Engine {
	return &Engine{
		Game:      game,
		Strategy:  NewTable(),
		Regrets:   NewTable(),
		Evaluator: evaluator,
		Config:    cfg,
		RNG:       rng,
	}
}

// MCCFRP runs the outer MCCFR-P loop for `ticks` iterations across all
// players, with pruning and linear-CFR discounting applied on the schedules
// described by strategyInterval/pruneTickThreshold/lcfrThreshold/discountInterval.
func (e *Engine) MCCFRP(ticks int, strategyInterval, pruneTickThreshold, lcfrThreshold, discountInterval int) {
	e.MCCFRPFrom(0, ticks, strategyInterval, pruneTickThreshold, lcfrThreshold, discountInterval)
}

// MCCFRPFrom runs ticks iterations starting at the global tick number
// offset, rather than always restarting the t%interval==0 schedule at 0.
// This lets a training run be sliced into checkpoint-sized chunks (each
// chunk a separate MCCFRPFrom call with offset advanced by the chunk size)
// without changing which ticks trigger update_strategy or discounting
// relative to one uninterrupted MCCFRP(offset+ticks, ...) call.
func (e *Engine) MCCFRPFrom(offset, ticks int, strategyInterval, pruneTickThreshold, lcfrThreshold, discountInterval int) {
	for i := 0; i < ticks; i++ {
		t := offset + i
		e.tick(t, strategyInterval, pruneTickThreshold)
		e.maybeDiscount(t, lcfrThreshold, discountInterval)
	}
}

// tick runs one outer-loop iteration (one dealt hand per player) without
// applying the linear-CFR discount step, so it can be shared between the
// single-engine MCCFRP loop and the multi-engine parallel trainer, where
// only one designated engine owns discounting.
func (e *Engine) tick(t int, strategyInterval, pruneTickThreshold int) {
	gi := e.Game.GameInfo
	players := gi.NumPlayers()

	for i := 0; i < players; i++ {
		deal := gi.DealHoleCardsAndBoardCards(e.RNG)
		boardI := gi.TotalBoardCards(0)

		if strategyInterval > 0 && t%strategyInterval == 0 {
			e.updateStrategy(e.Game.NodeStore.Root(), deal.Board, boardI, deal.HoleCards, i)
		}

		if t > pruneTickThreshold {
			if e.RNG.Float64() < 0.05 {
				e.traverseMCCFR(e.Game.NodeStore.Root(), deal.Board, boardI, deal.HoleCards, i)
			} else {
				e.traverseMCCFRP(e.Game.NodeStore.Root(), deal.Board, boardI, deal.HoleCards, i)
			}
		} else {
			e.traverseMCCFR(e.Game.NodeStore.Root(), deal.Board, boardI, deal.HoleCards, i)
		}
	}
}

// maybeDiscount applies the linear-CFR discount to both tables if tick t
// falls on the discount schedule and is still within lcfrThreshold.
func (e *Engine) maybeDiscount(t, lcfrThreshold, discountInterval int) {
	if discountInterval > 0 && t < lcfrThreshold && t%discountInterval == 0 {
		step := t / discountInterval
		d := float64(step) / float64(step+1)
		e.Regrets.ForEach(func(_ TableKey, entry *Entry) { entry.Discount(d) })
		e.Strategy.ForEach(func(_ TableKey, entry *Entry) { entry.Discount(d) })
	}
}

// updateStrategy accumulates the average strategy for player's own decision
// nodes in early rounds, via external sampling.
func (e *Engine) updateStrategy(id tree.NodeId, board []gamedef.Card, boardI int, hole [][]gamedef.Card, player int) {
	state := e.Game.State(id)
	if state.Finished || state.Folded[player] || state.Round > int(e.Config.RoundsUpdateAverageStrategy) {
		return
	}

	actions := e.Game.GetActions(id)
	if len(actions) == 0 {
		return
	}

	if state.ActivePlayer == player {
		bucket := e.Game.GetBucket(state.Round, board[:boardI], hole[player])
		key := TableKey{Node: id, Bucket: bucket}
		regrets := e.Regrets.Get(key, len(actions))
		sigma := CalculateStrategy(regrets.Get())

		choice := SampleStrategy(e.RNG, sigma)
		strat := e.Strategy.Get(key, len(actions))
		strat.Increment(choice)

		childBoardI := boardI
		childId, err := e.Game.ApplyActionToNode(id, &childBoardI, actions[choice])
		if err != nil {
			return
		}
		e.updateStrategy(childId, board, childBoardI, hole, player)
		return
	}

	for _, a := range actions {
		childBoardI := boardI
		childId, err := e.Game.ApplyActionToNode(id, &childBoardI, a)
		if err != nil {
			continue
		}
		e.updateStrategy(childId, board, childBoardI, hole, player)
	}
}

// traverseMCCFR is external-sampling CFR: it returns the utility to player
// at id, updating regrets at player's own decision nodes along the way.
func (e *Engine) traverseMCCFR(id tree.NodeId, board []gamedef.Card, boardI int, hole [][]gamedef.Card, player int) int32 {
	return e.traverse(id, board, boardI, hole, player, false)
}

// traverseMCCFRP is traverseMCCFR with pruning: actions whose regret has
// fallen at or below PruneThreshold are skipped entirely at player's own
// decisions.
func (e *Engine) traverseMCCFRP(id tree.NodeId, board []gamedef.Card, boardI int, hole [][]gamedef.Card, player int) int32 {
	return e.traverse(id, board, boardI, hole, player, true)
}

func (e *Engine) traverse(id tree.NodeId, board []gamedef.Card, boardI int, hole [][]gamedef.Card, player int, prune bool) int32 {
	state := e.Game.State(id)
	if state.Finished {
		payout := state.GetPayout(e.Evaluator, board, hole)
		return int32(payout[player])
	}
	if state.Folded[player] {
		payout := state.GetPayout(e.Evaluator, board, hole)
		return int32(payout[player])
	}

	actions := e.Game.GetActions(id)
	bucket := e.Game.GetBucket(state.Round, board[:boardI], hole[state.ActivePlayer])
	key := TableKey{Node: id, Bucket: bucket}
	regrets := e.Regrets.Get(key, len(actions))
	regretValues := regrets.Get()
	sigma := CalculateStrategy(regretValues)

	if state.ActivePlayer == player {
		values := make([]int32, len(actions))
		pruned := make([]bool, len(actions))
		for i, a := range actions {
			if prune && regretValues[i] <= PruneThreshold {
				pruned[i] = true
				continue
			}
			childBoardI := boardI
			childId, err := e.Game.ApplyActionToNode(id, &childBoardI, a)
			if err != nil {
				pruned[i] = true
				continue
			}
			values[i] = e.traverse(childId, board, childBoardI, hole, player, prune)
		}

		expected := 0.0
		for i, v := range values {
			if !pruned[i] {
				expected += sigma[i] * float64(v)
			}
		}
		v := int32(roundHalfAwayFromZero(expected))

		delta := make([]int32, len(actions))
		for i, av := range values {
			if pruned[i] {
				continue
			}
			delta[i] = av - v
		}
		regrets.Add(delta)
		return v
	}

	choice := SampleStrategy(e.RNG, sigma)
	childBoardI := boardI
	childId, err := e.Game.ApplyActionToNode(id, &childBoardI, actions[choice])
	if err != nil {
		return 0
	}
	return e.traverse(childId, board, childBoardI, hole, player, prune)
}
