package play

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
	"github.com/mccfr/abstractsolver/solver"
	"github.com/mccfr/abstractsolver/tree"
)

// ParseAction parses one line of the stdin grammar: "f", "c", or
// "r <amount>". Whitespace around the line is trimmed; the command letter
// is case-sensitive per the grammar spec.
func ParseAction(line string) (gamedef.Action, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "f":
		return gamedef.FoldAction(), nil
	case line == "c":
		return gamedef.CallAction(), nil
	case strings.HasPrefix(line, "r "):
		amountStr := strings.TrimSpace(strings.TrimPrefix(line, "r "))
		amount, err := strconv.ParseUint(amountStr, 10, 32)
		if err != nil {
			return gamedef.Action{}, fmt.Errorf("play: invalid raise amount %q: %w", amountStr, err)
		}
		return gamedef.RaiseAction(uint32(amount)), nil
	default:
		return gamedef.Action{}, fmt.Errorf("play: unrecognized input %q (expected f, c, or r <amount>)", line)
	}
}

// WantsToPlay reports whether a prompt line starts a hand: "y", "Y", or
// "yes" (case sensitive per the grammar).
func WantsToPlay(line string) bool {
	switch strings.TrimSpace(line) {
	case "y", "Y", "yes":
		return true
	default:
		return false
	}
}

// SampleAction picks an action at id for a trained (non-human) seat: it
// reads the average-strategy table, normalizes the visit counts into a
// distribution (falling back to uniform over legal actions when the
// information set was never visited during training), and samples from it.
func SampleAction(rng *rand.Rand, game *tree.AbstractGame, strategy *solver.Table, id tree.NodeId, bucket cardabs.BucketId, actions []gamedef.Action) gamedef.Action {
	entry := strategy.Get(solver.TableKey{Node: id, Bucket: bucket}, len(actions))
	sigma := solver.NormalizeStrategy(entry.Get())
	choice := solver.SampleStrategy(rng, sigma)
	return actions[choice]
}

// PlayLoop drives the interactive collaborator: prompts for a hand, deals
// cards, alternates human stdin input at Human's seat with SampleAction at
// every other seat, applies each action to the live tree, and at showdown
// reports payouts and folds them into Session.
type PlayLoop struct {
	Game      *tree.AbstractGame
	Cards     cardabs.CardAbstraction
	Strategy  *solver.Table
	Evaluator gamestate.HandRanker
	Human     int
	RNG       *rand.Rand
	In        *bufio.Scanner
	Out       io.Writer
	Session   *Session
}

// NewPlayLoop wires a ready-to-run loop over in/out.
func NewPlayLoop(game *tree.AbstractGame, strategy *solver.Table, evaluator gamestate.HandRanker, human int, rng *rand.Rand, in io.Reader, out io.Writer) *PlayLoop {
	return &PlayLoop{
		Game:      game,
		Cards:     game.Cards,
		Strategy:  strategy,
		Evaluator: evaluator,
		Human:     human,
		RNG:       rng,
		In:        bufio.NewScanner(in),
		Out:       out,
		Session:   NewSession(game.GameInfo.NumPlayers()),
	}
}

// Run prompts for hands in a loop until the operator declines to continue
// or stdin is exhausted.
func (pl *PlayLoop) Run() error {
	for {
		fmt.Fprint(pl.Out, "play a hand? (y/n) ")
		if !pl.In.Scan() {
			return nil
		}
		if !WantsToPlay(pl.In.Text()) {
			return nil
		}
		if err := pl.playHand(); err != nil {
			return err
		}
	}
}

func (pl *PlayLoop) playHand() error {
	gi := pl.Game.GameInfo
	game := pl.Game
	deal := gi.DealHoleCardsAndBoardCards(pl.RNG)
	id := game.NodeStore.Root()
	boardI := gi.TotalBoardCards(0)

	for {
		state := game.State(id)
		if state.Finished {
			payout := state.GetPayout(pl.Evaluator, deal.Board, deal.HoleCards)
			pl.Session.Record(payout)
			fmt.Fprintf(pl.Out, "hand finished: payouts %v\n", payout)
			return nil
		}

		actions := game.GetActions(id)
		if len(actions) == 0 {
			return fmt.Errorf("play: no legal actions at a non-terminal state")
		}

		var chosen gamedef.Action
		if state.ActivePlayer == pl.Human {
			fmt.Fprintf(pl.Out, "your hole cards: %v, board: %v\n", deal.HoleCards[pl.Human], deal.Board[:boardI])
			fmt.Fprint(pl.Out, "action? (f / c / r <amount>) ")
			if !pl.In.Scan() {
				return fmt.Errorf("play: stdin closed mid-hand")
			}
			action, err := ParseAction(pl.In.Text())
			if err != nil {
				fmt.Fprintln(pl.Out, err)
				continue
			}
			chosen = action
		} else {
			bucket := game.GetBucket(state.Round, deal.Board[:boardI], deal.HoleCards[state.ActivePlayer])
			chosen = SampleAction(pl.RNG, game, pl.Strategy, id, bucket, actions)
		}

		childBoardI := boardI
		childId, err := game.ApplyActionToNode(id, &childBoardI, chosen)
		if err != nil {
			fmt.Fprintln(pl.Out, err)
			continue
		}
		id = childId
		boardI = childBoardI
	}
}
