package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/config"
	"github.com/mccfr/abstractsolver/evaluator"
	"github.com/mccfr/abstractsolver/gamestate"
	"github.com/mccfr/abstractsolver/solver"
	"github.com/mccfr/abstractsolver/tree"
)

// TrainCmd runs MCCFR-P to build a blueprint strategy for one abstracted
// game, then persists the average-strategy table and the node tree it is
// keyed against.
type TrainCmd struct {
	GameConfig   string `help:"path to the game rules config" required:""`
	ActionConfig string `help:"path to the action abstraction config" required:""`
	CardConfig   string `help:"path to the card abstraction config (defaults to NoBuckets)"`
	CFRConfig    string `help:"path to the CFR engine config" required:""`

	OutputStrategyPath string `help:"path to write the average-strategy blueprint" required:""`
	OutputNodesPath    string `help:"path to write the node tree" required:""`

	Ticks              int `help:"number of outer-loop ticks" default:"1000000"`
	StrategyInterval   int `help:"ticks between average-strategy updates" default:"100"`
	PruneTickThreshold int `help:"tick after which negative-regret pruning begins" default:"200"`
	LCFRThreshold      int `help:"tick after which linear-CFR discounting stops" default:"400"`
	DiscountInterval   int `help:"ticks between linear-CFR discount applications" default:"10"`

	Parallel int   `help:"number of concurrent engines sharing one tree and one pair of tables" default:"1"`
	Seed     int64 `help:"random seed; 0 derives one from wall-clock time" default:"0"`

	CheckpointPath  string `help:"path to write periodic strategy checkpoints to (disabled if empty)"`
	CheckpointEvery int    `help:"ticks between checkpoints (0 disables)" default:"0"`
}

func (cmd *TrainCmd) Run(ctx context.Context) error {
	gi, err := config.LoadGameInfo(cmd.GameConfig)
	if err != nil {
		return err
	}
	aa, err := config.LoadActionAbstraction(cmd.ActionConfig)
	if err != nil {
		return err
	}
	var ca cardabs.CardAbstraction = cardabs.NoBuckets{}
	if cmd.CardConfig != "" {
		loaded, err := config.LoadCardAbstraction(cmd.CardConfig)
		if err != nil {
			return err
		}
		ca = loaded
	}
	cfg, err := config.LoadCFR(cmd.CFRConfig)
	if err != nil {
		return err
	}

	schedule := solver.TrainingSchedule{
		Ticks:              cmd.Ticks,
		StrategyInterval:   cmd.StrategyInterval,
		PruneTickThreshold: cmd.PruneTickThreshold,
		LCFRThreshold:      cmd.LCFRThreshold,
		DiscountInterval:   cmd.DiscountInterval,
	}
	if err := schedule.Validate(); err != nil {
		return err
	}

	seed := cmd.Seed
	clock := quartz.NewReal()
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	deal := gi.DealHoleCardsAndBoardCards(rng)
	root := gamestate.NewRoot(gi, 0, deal)
	game := tree.NewAbstractGame(gi, aa, ca, root)
	eval := evaluator.Select(gi)

	log.Info().
		Int("ticks", cmd.Ticks).
		Int("players", gi.NumPlayers()).
		Int("parallel", cmd.Parallel).
		Int64("seed", seed).
		Msg("starting training run")

	start := clock.Now()
	var strategy, regrets *solver.Table

	if cmd.Parallel <= 1 {
		engine := solver.NewEngine(game, eval, cfg, rng)
		if err := cmd.runWithCheckpoints(ctx, clock, schedule, engine, nil); err != nil {
			return err
		}
		strategy, regrets = engine.Strategy, engine.Regrets
	} else {
		engines := solver.NewParallelEngines(game, eval, cfg, seed, cmd.Parallel)
		if err := cmd.runWithCheckpoints(ctx, clock, schedule, nil, engines); err != nil {
			return err
		}
		strategy, regrets = engines[0].Strategy, engines[0].Regrets
	}

	duration := clock.Now().Sub(start)
	log.Info().Dur("duration", duration).Int("infosets", strategy.Size()).Int("regret_entries", regrets.Size()).Msg("training completed")

	bp := solver.SnapshotStrategy(strategy)
	bp.Version = 1
	bp.GeneratedAt = clock.Now()
	bp.Iterations = schedule.Ticks
	if err := solver.SaveBlueprintFile(bp, cmd.OutputStrategyPath); err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	log.Info().Str("path", cmd.OutputStrategyPath).Msg("blueprint saved")

	if err := saveNodeStore(game.NodeStore, cmd.OutputNodesPath); err != nil {
		return fmt.Errorf("save node tree: %w", err)
	}
	log.Info().Str("path", cmd.OutputNodesPath).Msg("node tree saved")

	return nil
}

// runWithCheckpoints drives training to completion in CheckpointEvery-sized
// slices (or one slice of the whole run if checkpointing is disabled),
// saving the blueprint and node tree between slices so a crash mid-run
// loses at most one checkpoint interval of progress. Each slice is run via
// the *From variants with the global tick already completed (done) passed
// as the offset, so update_strategy/discounting fire on exactly the same
// ticks they would in one uninterrupted run regardless of how --checkpoint-every
// divides the schedule.
func (cmd *TrainCmd) runWithCheckpoints(ctx context.Context, clock quartz.Clock, schedule solver.TrainingSchedule, engine *solver.Engine, parallel []*solver.Engine) error {
	slice := schedule.Ticks
	if cmd.CheckpointPath != "" && cmd.CheckpointEvery > 0 {
		slice = cmd.CheckpointEvery
	}
	if slice <= 0 {
		slice = schedule.Ticks
	}

	done := 0
	for done < schedule.Ticks {
		n := slice
		if done+n > schedule.Ticks {
			n = schedule.Ticks - done
		}

		if engine != nil {
			engine.MCCFRPFrom(done, n, schedule.StrategyInterval, schedule.PruneTickThreshold, schedule.LCFRThreshold, schedule.DiscountInterval)
		} else {
			if err := solver.RunParallelFrom(ctx, parallel, done, n, schedule.StrategyInterval, schedule.PruneTickThreshold, schedule.LCFRThreshold, schedule.DiscountInterval); err != nil {
				return err
			}
		}
		done += n

		if cmd.CheckpointPath != "" && cmd.CheckpointEvery > 0 && done < schedule.Ticks {
			var strategy *solver.Table
			if engine != nil {
				strategy = engine.Strategy
			} else {
				strategy = parallel[0].Strategy
			}
			bp := solver.SnapshotStrategy(strategy)
			bp.Version = 1
			bp.GeneratedAt = clock.Now()
			bp.Iterations = done
			if err := solver.SaveBlueprintFile(bp, cmd.CheckpointPath); err != nil {
				return fmt.Errorf("save checkpoint: %w", err)
			}
			log.Info().Int("tick", done).Str("path", cmd.CheckpointPath).Msg("checkpoint saved")
		}
	}
	return nil
}

func saveNodeStore(ns *tree.NodeStore, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create node tree file: %w", err)
	}
	defer f.Close()
	return ns.Save(f)
}
