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
	"github.com/mccfr/abstractsolver/play"
	"github.com/mccfr/abstractsolver/solver"
	"github.com/mccfr/abstractsolver/tree"
)

// PlayCmd loads a trained blueprint and node tree and drives an
// interactive session against it over stdin/stdout.
type PlayCmd struct {
	GameConfig   string `help:"path to the game rules config" required:""`
	ActionConfig string `help:"path to the action abstraction config" required:""`
	CardConfig   string `help:"path to the card abstraction config (defaults to NoBuckets)"`

	StrategyPath string `help:"path to a saved average-strategy blueprint" required:""`
	NodesPath    string `help:"path to a saved node tree" required:""`

	Human int   `help:"seat index the operator plays" default:"0"`
	Seed  int64 `help:"random seed for dealing and opponent sampling; 0 derives one from wall-clock time" default:"0"`
}

func (cmd *PlayCmd) Run(ctx context.Context) error {
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
	log.Info().
		Int("version", bp.Version).
		Int("iterations", bp.Iterations).
		Int("infosets", strategy.Size()).
		Msg("blueprint loaded")

	nodesFile, err := os.Open(cmd.NodesPath)
	if err != nil {
		return fmt.Errorf("open node tree: %w", err)
	}
	defer nodesFile.Close()
	nodeStore, err := tree.LoadNodeStore(nodesFile)
	if err != nil {
		return fmt.Errorf("load node tree: %w", err)
	}

	if cmd.Human < 0 || cmd.Human >= gi.NumPlayers() {
		return fmt.Errorf("play: seat %d out of range for a %d-player game", cmd.Human, gi.NumPlayers())
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = quartz.NewReal().Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	game := &tree.AbstractGame{GameInfo: gi, Actions: aa, Cards: ca, NodeStore: nodeStore}
	eval := evaluator.Select(gi)

	loop := play.NewPlayLoop(game, strategy, eval, cmd.Human, rng, os.Stdin, os.Stdout)
	if err := loop.Run(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	log.Info().Int("hands", loop.Session.Hands).Ints64("totals", loop.Session.Totals).Msg("session complete")
	return nil
}
