package solver

import (
	"math/rand"
	"testing"

	"github.com/mccfr/abstractsolver/actionabs"
	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/evaluator"
	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/gamestate"
	"github.com/mccfr/abstractsolver/tree"
)

// kuhnConvergenceGame builds the exact limit Kuhn configuration the
// end-to-end scenario names: two players, one round, one suit, three ranks,
// blinds [1,1], starting stacks [100,100], a single Fixed(1) raise.
func kuhnConvergenceGame(seed int64) (*tree.AbstractGame, *rand.Rand) {
	gi := &gamedef.GameInfo{
		StartingStacks: []uint32{100, 100},
		Blinds:         []uint32{1, 1},
		RaiseSizes:     []uint32{1},
		BettingType:    gamedef.Limit,
		NumPlayersV:    2,
		NumRoundsV:     1,
		MaxRaises:      []uint8{1},
		FirstPlayer:    []uint8{0},
		NumSuitsV:      1,
		NumRanksV:      3,
		NumHoleCardsV:  1,
		NumBoardCardsV: []uint8{0},
	}
	rng := rand.New(rand.NewSource(seed))
	deal := gi.DealHoleCardsAndBoardCards(rng)
	root := gamestate.NewRoot(gi, 1, deal)
	aa := actionabs.ActionAbstraction{
		Raises: []gamedef.AbstractRaise{
			{
				Type:        gamedef.RaiseType{Kind: gamedef.Fixed, Fixed: 1},
				RoundConfig: []gamedef.RaiseRoundConfig{{Kind: gamedef.Always}},
			},
		},
	}
	return tree.NewAbstractGame(gi, aa, cardabs.NoBuckets{}, root), rng
}

// TestKuhnFoldProbabilityAfterTraining is spec.md's first literal end-to-end
// scenario: after mccfr_p(1500,20,400,400,400), player 0 holding the lowest
// card (bucket 0) and facing a bet after checking must fold at least 60% of
// the time. The lowest card never wins a called showdown, so the Kuhn poker
// equilibrium fold rate here is 1; 0.6 is a loose floor, not a tight bound.
func TestKuhnFoldProbabilityAfterTraining(t *testing.T) {
	t.Parallel()
	game, rng := kuhnConvergenceGame(42)
	cfg := Config{RoundsUpdateAverageStrategy: 0}
	engine := NewEngine(game, evaluator.HighCardEvaluator{}, cfg, rng)

	engine.MCCFRP(1500, 20, 400, 400, 400)

	root := game.NodeStore.Root()
	boardI := game.GameInfo.TotalBoardCards(0)

	checkId, err := game.ApplyActionToNode(root, &boardI, gamedef.CallAction())
	if err != nil {
		t.Fatalf("unexpected error applying check: %v", err)
	}

	var bet gamedef.Action
	found := false
	for _, a := range game.GetActions(checkId) {
		if a.Kind == gamedef.Raise {
			bet = a
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a bet to be legal after player 0 checks")
	}

	facingBetId, err := game.ApplyActionToNode(checkId, &boardI, bet)
	if err != nil {
		t.Fatalf("unexpected error applying bet: %v", err)
	}

	actions := game.GetActions(facingBetId)
	entry := engine.Strategy.Get(TableKey{Node: facingBetId, Bucket: cardabs.BucketId(0)}, len(actions))
	sigma := NormalizeStrategy(entry.Get())

	foldProb := 0.0
	for i, a := range actions {
		if a.Kind == gamedef.Fold {
			foldProb = sigma[i]
		}
	}
	if foldProb < 0.6 {
		t.Fatalf("expected player 0 with the lowest card facing a bet to fold >= 0.6 of the time, got %f over actions %v (sigma %v)", foldProb, actions, sigma)
	}
}

// leducConvergenceGame builds the two-round, one-board-card Leduc
// configuration the second literal scenario names: num_ranks=3, num_suits=2,
// max_raises=[2,2], with a round-gated 2-bet/4-bet raise ladder.
func leducConvergenceGame(seed int64) (*tree.AbstractGame, *rand.Rand) {
	gi := &gamedef.GameInfo{
		StartingStacks: []uint32{100, 100},
		Blinds:         []uint32{1, 1},
		RaiseSizes:     []uint32{2, 4},
		BettingType:    gamedef.Limit,
		NumPlayersV:    2,
		NumRoundsV:     2,
		MaxRaises:      []uint8{2, 2},
		FirstPlayer:    []uint8{0, 0},
		NumSuitsV:      2,
		NumRanksV:      3,
		NumHoleCardsV:  1,
		NumBoardCardsV: []uint8{0, 1},
	}
	rng := rand.New(rand.NewSource(seed))
	deal := gi.DealHoleCardsAndBoardCards(rng)
	root := gamestate.NewRoot(gi, 1, deal)
	aa := actionabs.ActionAbstraction{
		Raises: []gamedef.AbstractRaise{
			{
				// Legal structurally in both rounds; IsValidAction's
				// amount==RaiseSizes[round] check filters this to round 0.
				Type:        gamedef.RaiseType{Kind: gamedef.Fixed, Fixed: 2},
				RoundConfig: []gamedef.RaiseRoundConfig{{Kind: gamedef.Always}, {Kind: gamedef.Always}},
			},
			{
				// Filtered to round 1 the same way.
				Type:        gamedef.RaiseType{Kind: gamedef.Fixed, Fixed: 4},
				RoundConfig: []gamedef.RaiseRoundConfig{{Kind: gamedef.Always}, {Kind: gamedef.Always}},
			},
		},
	}
	return tree.NewAbstractGame(gi, aa, cardabs.NoBuckets{}, root), rng
}

// TestLeducNutHandRaiseProbabilityAfterTraining is spec.md's second literal
// end-to-end scenario: after training, the average strategy at the root
// holding the strongest hand (rank 2) must assign at least 0.8 to Raise.
// spec.md names a schedule only for Kuhn; this schedule is an Open Question
// decision recorded in DESIGN.md, scaled up for Leduc's larger tree.
func TestLeducNutHandRaiseProbabilityAfterTraining(t *testing.T) {
	t.Parallel()
	game, rng := leducConvergenceGame(7)
	cfg := Config{RoundsUpdateAverageStrategy: 0}
	engine := NewEngine(game, evaluator.HighCardEvaluator{}, cfg, rng)

	engine.MCCFRP(20000, 20, 1000, 10000, 100)

	root := game.NodeStore.Root()
	actions := game.GetActions(root)
	entry := engine.Strategy.Get(TableKey{Node: root, Bucket: cardabs.BucketId(4)}, len(actions))
	sigma := NormalizeStrategy(entry.Get())

	raiseProb := 0.0
	for i, a := range actions {
		if a.Kind == gamedef.Raise {
			raiseProb += sigma[i]
		}
	}
	if raiseProb < 0.8 {
		t.Fatalf("expected the strongest Leduc hand to raise at the root >= 0.8 of the time, got %f over actions %v (sigma %v)", raiseProb, actions, sigma)
	}
}
