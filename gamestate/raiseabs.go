package gamestate

import "github.com/mccfr/abstractsolver/gamedef"

// AbstractRaiseToReal maps one configured AbstractRaise to a concrete
// Action::Raise for the active player in s, or reports ok=false if the
// option is not legal right now (round-gated, or the derived amount fails
// IsValidAction).
func (s *GameState) AbstractRaiseToReal(gi *gamedef.GameInfo, ar gamedef.AbstractRaise) (gamedef.Action, bool) {
	active := s.ActivePlayer
	raisesThisRound := s.raisesThisRound()

	if !ar.AllowedInRound(s.Round, raisesThisRound) {
		return gamedef.Action{}, false
	}

	var r uint32
	switch ar.Type.Kind {
	case gamedef.AllIn:
		r = s.Stack[active]

	case gamedef.Fixed:
		if gi.BettingType == gamedef.NoLimit {
			r = s.MaxSpent + ar.Type.Fixed
		} else {
			r = ar.Type.Fixed
		}

	case gamedef.PotRatio:
		toCall := uint32(0)
		if s.MaxSpent > s.Spent[active] {
			toCall = s.MaxSpent - s.Spent[active]
			if called := s.Stack[active] - s.Spent[active]; toCall > called {
				toCall = called
			}
		}
		potTotal := uint32(0)
		for _, v := range s.Spent {
			potTotal += v
		}
		potTotal += toCall
		r = uint32(roundHalfUp(float64(ar.Type.Ratio) * float64(potTotal)))

	default:
		return gamedef.Action{}, false
	}

	action := gamedef.RaiseAction(r)
	if !s.IsValidAction(gi, action) {
		return gamedef.Action{}, false
	}
	return action, true
}

func roundHalfUp(x float64) float64 {
	if x < 0 {
		return -roundHalfUp(-x)
	}
	return float64(int64(x + 0.5))
}
