package solver

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/mccfr/abstractsolver/gamestate"
	"github.com/mccfr/abstractsolver/tree"
)

// NewParallelEngines builds n Engines that share one game tree and one pair
// of regret/average-strategy tables, each with its own RNG stream. The
// shared NodeStore and Table are both already safe for concurrent access;
// sharing them (instead of merging independently-grown trees afterward) is
// what lets every goroutine contribute to the same information sets.
func NewParallelEngines(game *tree.AbstractGame, evaluator gamestate.HandRanker, cfg Config, seed int64, n int) []*Engine {
	shared := &Engine{
		Game:      game,
		Strategy:  NewTable(),
		Regrets:   NewTable(),
		Evaluator: evaluator,
		Config:    cfg,
	}
	engines := make([]*Engine, n)
	for i := 0; i < n; i++ {
		e := *shared
		e.RNG = rand.New(rand.NewSource(seed + int64(i)))
		engines[i] = &e
	}
	return engines
}

// RunParallel drives ticks iterations across every engine concurrently.
// Discounting is owned exclusively by engines[0] so the multiplicative
// decay is applied once per tick rather than once per goroutine; every
// other engine only traverses and accumulates into the shared tables.
func RunParallel(ctx context.Context, engines []*Engine, ticks, strategyInterval, pruneTickThreshold, lcfrThreshold, discountInterval int) error {
	return RunParallelFrom(ctx, engines, 0, ticks, strategyInterval, pruneTickThreshold, lcfrThreshold, discountInterval)
}

// RunParallelFrom is RunParallel starting the t%interval==0 schedule at the
// global tick number offset, the parallel-engine counterpart to
// Engine.MCCFRPFrom — see its doc comment for why this matters once training
// is sliced into checkpoints.
func RunParallelFrom(ctx context.Context, engines []*Engine, offset, ticks, strategyInterval, pruneTickThreshold, lcfrThreshold, discountInterval int) error {
	for i := 0; i < ticks; i++ {
		t := offset + i
		g, gctx := errgroup.WithContext(ctx)
		for _, e := range engines {
			e := e
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				e.tick(t, strategyInterval, pruneTickThreshold)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		engines[0].maybeDiscount(t, lcfrThreshold, discountInterval)
	}
	return nil
}
