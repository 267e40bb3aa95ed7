package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Train TrainCmd `cmd:"" help:"run MCCFR-P training and write a blueprint"`
	Play  PlayCmd  `cmd:"" help:"play interactively against a trained blueprint"`
	Eval  EvalCmd  `cmd:"" help:"estimate a blueprint's exploitability via Monte Carlo best response"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("solver"),
		kong.Description("abstract-game MCCFR solver"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "train":
		err = cli.Train.Run(context.Background())
	case "play":
		err = cli.Play.Run(context.Background())
	case "eval":
		err = cli.Eval.Run(context.Background())
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", ctx.Command()).Msg("command failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
