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
	"github.com/mccfr/abstractsolver/solver"
	"github.com/mccfr/abstractsolver/tree"
)

// EvalCmd estimates how far a trained blueprint sits from equilibrium by a
// Monte Carlo best-response traversal: for each sampled deal, every seat's
// exact best-response value against the blueprint is computed and averaged.
type EvalCmd struct {
	GameConfig   string `help:"path to the game rules config" required:""`
	ActionConfig string `help:"path to the action abstraction config" required:""`
	CardConfig   string `help:"path to the card abstraction config (defaults to NoBuckets)"`

	StrategyPath string `help:"path to a saved average-strategy blueprint" required:""`
	NodesPath    string `help:"path to a saved node tree" required:""`

	Samples int   `help:"number of sampled deals to average the best response over" default:"10000"`
	Seed    int64 `help:"random seed; 0 derives one from wall-clock time" default:"0"`
}

func (cmd *EvalCmd) Run(ctx context.Context) error {
	if cmd.Samples <= 0 {
		return fmt.Errorf("eval: samples must be positive (got %d)", cmd.Samples)
	}

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

	bp, err := solver.LoadBlueprintFile(cmd.StrategyPath)
	if err != nil {
		return fmt.Errorf("load blueprint: %w", err)
	}
	strategy := bp.Restore()

	nodesFile, err := os.Open(cmd.NodesPath)
	if err != nil {
		return fmt.Errorf("open node tree: %w", err)
	}
	defer nodesFile.Close()
	nodeStore, err := tree.LoadNodeStore(nodesFile)
	if err != nil {
		return fmt.Errorf("load node tree: %w", err)
	}

	game := &tree.AbstractGame{GameInfo: gi, Actions: aa, Cards: ca, NodeStore: nodeStore}
	eval := evaluator.Select(gi)

	seed := cmd.Seed
	if seed == 0 {
		seed = quartz.NewReal().Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	log.Info().
		Int("version", bp.Version).
		Int("iterations", bp.Iterations).
		Int("infosets", strategy.Size()).
		Int("samples", cmd.Samples).
		Msg("blueprint loaded")

	values := solver.Exploitability(game, eval, strategy, rng, cmd.Samples)

	total := 0.0
	for p, v := range values {
		total += v
		log.Info().Int("seat", p).Float64("best_response_value", v).Msg("seat best response")
	}
	log.Info().Float64("total_exploitability", total).Msg("evaluation complete")
	return nil
}
