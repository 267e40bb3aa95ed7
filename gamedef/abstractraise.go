package gamedef

import (
	"encoding/json"
	"fmt"
)

// RaiseRoundKind controls whether an abstract raise option is legal in a
// given betting round.
type RaiseRoundKind uint8

const (
	NotAllowed RaiseRoundKind = iota
	Always
	Before // legal only when fewer than K raises have occurred this round
)

// RaiseRoundConfig is the per-round legality gate for one AbstractRaise.
type RaiseRoundConfig struct {
	Kind RaiseRoundKind
	K    uint32 // only meaningful when Kind == Before
}

func (c RaiseRoundConfig) allowed(raisesThisRound int) bool {
	switch c.Kind {
	case Always:
		return true
	case Before:
		return raisesThisRound < int(c.K)
	default:
		return false
	}
}

// MarshalJSON renders RaiseRoundConfig as a single-key object: {"NotAllowed":null},
// {"Always":null}, or {"Before":k}, matching the config schema.
func (c RaiseRoundConfig) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case NotAllowed:
		return []byte(`{"NotAllowed":null}`), nil
	case Always:
		return []byte(`{"Always":null}`), nil
	case Before:
		return json.Marshal(map[string]uint32{"Before": c.K})
	default:
		return nil, fmt.Errorf("gamedef: unknown round config kind %d", c.Kind)
	}
}

func (c *RaiseRoundConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("gamedef: round config must be a single-key object: %w", err)
	}
	if _, ok := raw["NotAllowed"]; ok {
		*c = RaiseRoundConfig{Kind: NotAllowed}
		return nil
	}
	if _, ok := raw["Always"]; ok {
		*c = RaiseRoundConfig{Kind: Always}
		return nil
	}
	if v, ok := raw["Before"]; ok {
		var k uint32
		if err := json.Unmarshal(v, &k); err != nil {
			return fmt.Errorf("gamedef: Before round config value must be a uint32: %w", err)
		}
		*c = RaiseRoundConfig{Kind: Before, K: k}
		return nil
	}
	return fmt.Errorf("gamedef: round config object has no recognized key")
}

// RaiseTypeKind selects how an abstract raise's concrete to-amount is derived.
type RaiseTypeKind uint8

const (
	AllIn RaiseTypeKind = iota
	PotRatio
	Fixed
)

// RaiseType is a tagged union: AllIn carries nothing, PotRatio carries a
// pot-fraction, Fixed carries an amount added to the current max spent
// (no-limit) or the round's raise size (limit).
type RaiseType struct {
	Kind  RaiseTypeKind
	Ratio float32 // PotRatio
	Fixed uint32  // Fixed
}

func (t RaiseType) String() string {
	switch t.Kind {
	case AllIn:
		return "all-in"
	case PotRatio:
		return fmt.Sprintf("pot-ratio:%.2f", t.Ratio)
	case Fixed:
		return fmt.Sprintf("fixed:%d", t.Fixed)
	default:
		return "unknown"
	}
}

// MarshalJSON renders RaiseType as a single-key object: {"AllIn":null},
// {"PotRatio":f32}, or {"Fixed":u32}, matching the config schema.
func (t RaiseType) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case AllIn:
		return []byte(`{"AllIn":null}`), nil
	case PotRatio:
		return json.Marshal(map[string]float32{"PotRatio": t.Ratio})
	case Fixed:
		return json.Marshal(map[string]uint32{"Fixed": t.Fixed})
	default:
		return nil, fmt.Errorf("gamedef: unknown raise type kind %d", t.Kind)
	}
}

func (t *RaiseType) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("gamedef: raise type must be a single-key object: %w", err)
	}
	if _, ok := raw["AllIn"]; ok {
		*t = RaiseType{Kind: AllIn}
		return nil
	}
	if v, ok := raw["PotRatio"]; ok {
		var r float32
		if err := json.Unmarshal(v, &r); err != nil {
			return fmt.Errorf("gamedef: PotRatio value must be a float: %w", err)
		}
		*t = RaiseType{Kind: PotRatio, Ratio: r}
		return nil
	}
	if v, ok := raw["Fixed"]; ok {
		var f uint32
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("gamedef: Fixed value must be a uint32: %w", err)
		}
		*t = RaiseType{Kind: Fixed, Fixed: f}
		return nil
	}
	return fmt.Errorf("gamedef: raise type object has no recognized key")
}

// AbstractRaise describes one discretized raise option: how its to-amount is
// computed, and which rounds it is legal in.
type AbstractRaise struct {
	Type        RaiseType          `json:"raise_type"`
	RoundConfig []RaiseRoundConfig `json:"round_config"` // indexed by round
}

// AllowedInRound reports whether this raise option is legal given how many
// raises have already occurred in round.
func (a AbstractRaise) AllowedInRound(round, raisesThisRound int) bool {
	if round < 0 || round >= len(a.RoundConfig) {
		return false
	}
	return a.RoundConfig[round].allowed(raisesThisRound)
}
