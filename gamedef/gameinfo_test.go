package gamedef

import (
	"encoding/json"
	"testing"
)

func TestBettingTypeJSONRoundTrip(t *testing.T) {
	t.Parallel()
	for _, bt := range []BettingType{Limit, NoLimit} {
		data, err := json.Marshal(bt)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got BettingType
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != bt {
			t.Fatalf("expected round trip to preserve %v, got %v", bt, got)
		}
	}
}

func TestBettingTypeUnmarshalRejectsUnknown(t *testing.T) {
	t.Parallel()
	var bt BettingType
	if err := json.Unmarshal([]byte(`"Pineapple"`), &bt); err == nil {
		t.Fatalf("expected an error for an unknown betting type")
	}
}

func TestGameInfoValidateAcceptsKuhn(t *testing.T) {
	t.Parallel()
	gi := GameInfo{
		StartingStacks: []uint32{100, 100},
		Blinds:         []uint32{1, 1},
		RaiseSizes:     []uint32{1},
		BettingType:    Limit,
		NumPlayersV:    2,
		NumRoundsV:     1,
		MaxRaises:      []uint8{1},
		FirstPlayer:    []uint8{0},
		NumSuitsV:      1,
		NumRanksV:      3,
		NumHoleCardsV:  1,
		NumBoardCardsV: []uint8{0},
	}
	if err := gi.Validate(); err != nil {
		t.Fatalf("expected a valid Kuhn config to pass validation: %v", err)
	}
}

func TestGameInfoValidateRejectsTooManyBoardCards(t *testing.T) {
	t.Parallel()
	gi := GameInfo{
		StartingStacks: []uint32{100, 100},
		Blinds:         []uint32{0, 0},
		RaiseSizes:     []uint32{1, 1, 1, 1},
		BettingType:    NoLimit,
		NumPlayersV:    2,
		NumRoundsV:     4,
		MaxRaises:      []uint8{4, 4, 4, 4},
		FirstPlayer:    []uint8{0, 0, 0, 0},
		NumSuitsV:      4,
		NumRanksV:      13,
		NumHoleCardsV:  2,
		NumBoardCardsV: []uint8{3, 3, 3, 3},
	}
	if err := gi.Validate(); err == nil {
		t.Fatalf("expected an error when total board cards exceed 7")
	}
}

func TestRaiseTypeJSONTaggedVariants(t *testing.T) {
	t.Parallel()
	cases := []RaiseType{
		{Kind: AllIn},
		{Kind: PotRatio, Ratio: 0.75},
		{Kind: Fixed, Fixed: 20},
	}
	for _, rt := range cases {
		data, err := json.Marshal(rt)
		if err != nil {
			t.Fatalf("marshal %+v: %v", rt, err)
		}
		var got RaiseType
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != rt {
			t.Fatalf("expected round trip %+v, got %+v", rt, got)
		}
	}
}

func TestRaiseRoundConfigJSONTaggedVariants(t *testing.T) {
	t.Parallel()
	cases := []RaiseRoundConfig{
		{Kind: NotAllowed},
		{Kind: Always},
		{Kind: Before, K: 3},
	}
	for _, rc := range cases {
		data, err := json.Marshal(rc)
		if err != nil {
			t.Fatalf("marshal %+v: %v", rc, err)
		}
		var got RaiseRoundConfig
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != rc {
			t.Fatalf("expected round trip %+v, got %+v", rc, got)
		}
	}
}

func TestAbstractRaiseAllowedInRoundBefore(t *testing.T) {
	t.Parallel()
	ar := AbstractRaise{
		Type:        RaiseType{Kind: Fixed, Fixed: 5},
		RoundConfig: []RaiseRoundConfig{{Kind: Before, K: 2}},
	}
	if !ar.AllowedInRound(0, 0) {
		t.Fatalf("expected Before:2 to allow at 0 raises so far")
	}
	if !ar.AllowedInRound(0, 1) {
		t.Fatalf("expected Before:2 to allow at 1 raise so far")
	}
	if ar.AllowedInRound(0, 2) {
		t.Fatalf("expected Before:2 to block at 2 raises so far")
	}
	if ar.AllowedInRound(1, 0) {
		t.Fatalf("expected out-of-range round to be disallowed")
	}
}
