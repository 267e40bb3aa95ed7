// Package config loads and validates the JSON configuration files a solver
// run needs: the game rules, the action abstraction's raise ladder, the
// card abstraction's bucketing scheme, and the CFR engine's own small set
// of training parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mccfr/abstractsolver/actionabs"
	"github.com/mccfr/abstractsolver/cardabs"
	"github.com/mccfr/abstractsolver/gamedef"
	"github.com/mccfr/abstractsolver/solver"
)

// LoadGameInfo reads and validates a GameInfo config file.
func LoadGameInfo(path string) (*gamedef.GameInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read game config %s: %w", path, err)
	}

	var gi gamedef.GameInfo
	if err := json.Unmarshal(data, &gi); err != nil {
		return nil, fmt.Errorf("config: parse game config %s: %w", path, err)
	}
	if err := gi.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid game config %s: %w", path, err)
	}
	return &gi, nil
}

// LoadActionAbstraction reads an ActionAbstraction config file: a single
// "possible_raises" array of tagged raise descriptors.
func LoadActionAbstraction(path string) (actionabs.ActionAbstraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return actionabs.ActionAbstraction{}, fmt.Errorf("config: read action abstraction config %s: %w", path, err)
	}

	var aa actionabs.ActionAbstraction
	if err := json.Unmarshal(data, &aa); err != nil {
		return actionabs.ActionAbstraction{}, fmt.Errorf("config: parse action abstraction config %s: %w", path, err)
	}
	return aa, nil
}

// cardAbstractionFile is the on-disk shape of a card abstraction config:
// a single "kind" discriminator naming which cardabs.CardAbstraction to
// build. Schema is ours to define: no wire format for this file is fixed
// elsewhere, only the CLI flag that names it.
type cardAbstractionFile struct {
	Kind string `json:"kind"`
}

// LoadCardAbstraction reads a card abstraction config file and builds the
// CardAbstraction it names.
func LoadCardAbstraction(path string) (cardabs.CardAbstraction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read card abstraction config %s: %w", path, err)
	}

	var f cardAbstractionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse card abstraction config %s: %w", path, err)
	}

	switch f.Kind {
	case "NoBuckets", "":
		return cardabs.NoBuckets{}, nil
	case "LosslessBuckets":
		return cardabs.LosslessBuckets{}, nil
	default:
		return nil, fmt.Errorf("config: unknown card abstraction kind %q in %s", f.Kind, path)
	}
}

// LoadCFR reads the CFR engine config file.
func LoadCFR(path string) (solver.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return solver.Config{}, fmt.Errorf("config: read cfr config %s: %w", path, err)
	}

	var cfg solver.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return solver.Config{}, fmt.Errorf("config: parse cfr config %s: %w", path, err)
	}
	return cfg, nil
}
