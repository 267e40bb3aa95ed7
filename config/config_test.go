package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mccfr/abstractsolver/cardabs"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGameInfoKuhn(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "game.json", `{
		"starting_stacks": [100, 100],
		"blinds": [1, 1],
		"raise_sizes": [1],
		"betting_type": "Limit",
		"num_players": 2,
		"num_rounds": 1,
		"max_raises": [1],
		"first_player": [0],
		"num_suits": 1,
		"num_ranks": 3,
		"num_hole_cards": 1,
		"num_board_cards": [0]
	}`)

	gi, err := LoadGameInfo(path)
	require.NoError(t, err)
	require.Equal(t, 2, gi.NumPlayers())
	require.Equal(t, 3, gi.NumRanks())
}

func TestLoadGameInfoRejectsMismatchedLengths(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "game.json", `{
		"starting_stacks": [100],
		"blinds": [1, 1],
		"raise_sizes": [1],
		"betting_type": "Limit",
		"num_players": 2,
		"num_rounds": 1,
		"max_raises": [1],
		"first_player": [0],
		"num_suits": 1,
		"num_ranks": 3,
		"num_hole_cards": 1,
		"num_board_cards": [0]
	}`)

	_, err := LoadGameInfo(path)
	require.Error(t, err)
}

func TestLoadGameInfoMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadGameInfo(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadActionAbstractionParsesTaggedRaiseTypes(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "actions.json", `{
		"possible_raises": [
			{
				"raise_type": {"PotRatio": 1.0},
				"round_config": [{"Always": null}]
			},
			{
				"raise_type": {"Fixed": 5},
				"round_config": [{"Before": 1}]
			},
			{
				"raise_type": {"AllIn": null},
				"round_config": [{"NotAllowed": null}]
			}
		]
	}`)

	aa, err := LoadActionAbstraction(path)
	require.NoError(t, err)
	require.Len(t, aa.Raises, 3)
	require.Equal(t, float32(1.0), aa.Raises[0].Type.Ratio, "expected first raise to be PotRatio 1.0")
	require.Equal(t, uint32(5), aa.Raises[1].Type.Fixed, "expected second raise to be Fixed 5")
	require.True(t, aa.Raises[1].AllowedInRound(0, 0), "expected Before:1 round config to allow when no raises have occurred yet")
	require.False(t, aa.Raises[1].AllowedInRound(0, 1), "expected Before:1 round config to block once one raise has occurred")
}

func TestLoadCardAbstractionNoBuckets(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "cards.json", `{"kind": "NoBuckets"}`)

	ca, err := LoadCardAbstraction(path)
	require.NoError(t, err)
	require.IsType(t, cardabs.NoBuckets{}, ca)
}

func TestLoadCardAbstractionRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "cards.json", `{"kind": "bogus"}`)

	_, err := LoadCardAbstraction(path)
	require.Error(t, err)
}

func TestLoadCFRConfig(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "cfr.json", `{"rounds_update_average_strategy": 2}`)

	cfg, err := LoadCFR(path)
	require.NoError(t, err)
	require.Equal(t, uint8(2), cfg.RoundsUpdateAverageStrategy)
}
