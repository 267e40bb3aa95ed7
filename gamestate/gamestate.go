// Package gamestate is the pure state-machine over abstracted betting
// sequences described by a gamedef.GameInfo: the canonical transition
// function from spec §4.2, side-pot-aware payouts, and abstract-raise
// resolution.
package gamestate

import (
	"errors"
	"fmt"

	"github.com/mccfr/abstractsolver/gamedef"
)

// ErrInvalidAction is returned by ApplyAction when IsValidAction is false.
var ErrInvalidAction = errors.New("gamestate: invalid action")

// GameState is an immutable, cloneable value: ApplyAction never mutates its
// receiver, it returns a new state. A Node owns exactly one GameState.
type GameState struct {
	HandID int64

	MaxSpent          uint32
	MinNoLimitRaiseTo uint32

	Spent []uint32 // per player, total committed this hand
	Stack []uint32 // per player, starting stack; never mutated after init

	SumRoundSpent [][]uint32 // [round][player]

	Actions      [][]gamedef.Action // [round][action index]
	ActingPlayer [][]int            // [round][action index], parallel to Actions

	Round        int
	ActivePlayer int
	Finished     bool

	Folded []bool

	Board []gamedef.Card
	Hole  [][]gamedef.Card
}

// NewRoot builds the initial state for a hand: blinds posted at round 0,
// active player set to the configured first-to-act seat (or the next
// eligible seat if that player is already all-in from their blind).
func NewRoot(gi *gamedef.GameInfo, handID int64, deal gamedef.Deal) GameState {
	p := gi.NumPlayers()
	r := gi.NumRounds()

	s := GameState{
		HandID:        handID,
		Spent:         make([]uint32, p),
		Stack:         append([]uint32(nil), gi.StartingStacks...),
		SumRoundSpent: make([][]uint32, r),
		Actions:       make([][]gamedef.Action, r),
		ActingPlayer:  make([][]int, r),
		Folded:        make([]bool, p),
		Board:         deal.Board,
		Hole:          deal.HoleCards,
	}
	for i := range s.SumRoundSpent {
		s.SumRoundSpent[i] = make([]uint32, p)
	}

	maxBlind := uint32(0)
	for i := 0; i < p; i++ {
		s.Spent[i] = min32(gi.Blinds[i], s.Stack[i])
		s.SumRoundSpent[0][i] = s.Spent[i]
		if s.Spent[i] > s.MaxSpent {
			s.MaxSpent = s.Spent[i]
		}
		if gi.Blinds[i] > maxBlind {
			maxBlind = gi.Blinds[i]
		}
	}
	s.MinNoLimitRaiseTo = s.MaxSpent + maxBlind

	s.ActivePlayer = s.nextActingPlayer(int(gi.FirstPlayer[0]))
	if s.ActivePlayer == -1 {
		s.Finished = true
	}
	return s
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func (s *GameState) clone() GameState {
	c := *s
	c.Spent = append([]uint32(nil), s.Spent...)
	c.Stack = append([]uint32(nil), s.Stack...)
	c.Folded = append([]bool(nil), s.Folded...)
	c.SumRoundSpent = make([][]uint32, len(s.SumRoundSpent))
	for i, row := range s.SumRoundSpent {
		c.SumRoundSpent[i] = append([]uint32(nil), row...)
	}
	c.Actions = make([][]gamedef.Action, len(s.Actions))
	c.ActingPlayer = make([][]int, len(s.ActingPlayer))
	for i := range s.Actions {
		c.Actions[i] = append([]gamedef.Action(nil), s.Actions[i]...)
		c.ActingPlayer[i] = append([]int(nil), s.ActingPlayer[i]...)
	}
	return c
}

func (s *GameState) numActions(round int) int {
	return len(s.Actions[round])
}

// nextActingPlayer scans cyclically from `from` (inclusive) for the next
// seat that has not folded and is not all-in. Returns -1 if none exists.
func (s *GameState) nextActingPlayer(from int) int {
	n := len(s.Stack)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if !s.Folded[pos] && s.Spent[pos] < s.Stack[pos] {
			return pos
		}
	}
	return -1
}

// numActive counts players who have not folded and are not all-in: the
// only players still capable of taking a voluntary action this round.
func (s *GameState) numActive() int {
	count := 0
	for i := range s.Stack {
		if !s.Folded[i] && s.Spent[i] < s.Stack[i] {
			count++
		}
	}
	return count
}

func (s *GameState) numNonFolded() int {
	count := 0
	for _, f := range s.Folded {
		if !f {
			count++
		}
	}
	return count
}

// numCalled implements spec §4.2's num_called(): counting from the most
// recent raise forward, every subsequent Call by a non-all-in player plus
// the raiser itself (if still chip-able) contributes one.
func (s *GameState) numCalled() int {
	actions := s.Actions[s.Round]
	acting := s.ActingPlayer[s.Round]

	raiseIdx := -1
	for i := len(actions) - 1; i >= 0; i-- {
		if actions[i].Kind == gamedef.Raise {
			raiseIdx = i
			break
		}
	}

	count := 0
	for i := raiseIdx + 1; i < len(actions); i++ {
		if actions[i].Kind == gamedef.Call {
			caller := acting[i]
			if s.Spent[caller] < s.Stack[caller] {
				count++
			}
		}
	}
	if raiseIdx >= 0 {
		raiser := acting[raiseIdx]
		if s.Spent[raiser] < s.Stack[raiser] {
			count++
		}
	}
	return count
}

func (s *GameState) raisesThisRound() int {
	count := 0
	for _, a := range s.Actions[s.Round] {
		if a.Kind == gamedef.Raise {
			count++
		}
	}
	return count
}

// raiseRange mirrors spec §4.2's raise_range(): the legal [min,max] to-amount
// band for a no-limit raise, or (0,0) if no raise is currently legal.
func (s *GameState) raiseRange(gi *gamedef.GameInfo) (uint32, uint32) {
	if s.raiseIllegalCommon(gi) {
		return 0, 0
	}
	active := s.ActivePlayer
	if s.MaxSpent >= s.Stack[active] {
		return 0, 0
	}
	if s.Stack[active] < s.MinNoLimitRaiseTo {
		return s.Stack[active], s.Stack[active]
	}
	return s.MinNoLimitRaiseTo, s.Stack[active]
}

func (s *GameState) raiseIllegalCommon(gi *gamedef.GameInfo) bool {
	if s.Finished {
		return true
	}
	if s.raisesThisRound() >= int(gi.MaxRaises[s.Round]) {
		return true
	}
	if s.numActive() <= 1 {
		return true
	}
	if s.numActions(s.Round)+gi.NumPlayers() > gamedef.MaxActionsPerRound {
		return true
	}
	return false
}

// IsValidAction reports whether action may legally be applied to s.
func (s *GameState) IsValidAction(gi *gamedef.GameInfo, a gamedef.Action) bool {
	active := s.ActivePlayer
	switch a.Kind {
	case gamedef.Fold:
		return !s.Finished && s.Spent[active] < s.Stack[active]
	case gamedef.Call:
		return !s.Finished
	case gamedef.Raise:
		if gi.BettingType == gamedef.Limit {
			if s.raiseIllegalCommon(gi) || s.MaxSpent >= s.Stack[active] {
				return false
			}
			return a.Amount == gi.RaiseSizes[s.Round]
		}
		lo, hi := s.raiseRange(gi)
		return lo > 0 && a.Amount >= lo && a.Amount <= hi
	default:
		return false
	}
}

// ApplyAction returns the successor state after applying a, or
// ErrInvalidAction if the action is not currently legal.
func (s *GameState) ApplyAction(gi *gamedef.GameInfo, a gamedef.Action) (GameState, error) {
	if !s.IsValidAction(gi, a) {
		return GameState{}, fmt.Errorf("%w: %s at round %d player %d", ErrInvalidAction, a, s.Round, s.ActivePlayer)
	}

	next := s.clone()
	active := next.ActivePlayer
	round := next.Round

	next.Actions[round] = append(next.Actions[round], a)
	next.ActingPlayer[round] = append(next.ActingPlayer[round], active)

	switch a.Kind {
	case gamedef.Fold:
		next.Folded[active] = true

	case gamedef.Call:
		prior := next.Spent[active]
		called := min32(next.MaxSpent, next.Stack[active])
		next.Spent[active] = called
		next.SumRoundSpent[round][active] += called - prior

	case gamedef.Raise:
		prior := next.Spent[active]
		if gi.BettingType == gamedef.NoLimit {
			next.MinNoLimitRaiseTo = max32(next.MinNoLimitRaiseTo, 2*a.Amount-next.MaxSpent)
			next.MaxSpent = a.Amount
		} else {
			next.MaxSpent = min32(next.MaxSpent+gi.RaiseSizes[round], next.Stack[active])
		}
		next.Spent[active] = next.MaxSpent
		next.SumRoundSpent[round][active] += next.MaxSpent - prior
	}

	next.advance(gi)
	return next, nil
}

// advance applies the post-action termination/round-advance rules of
// spec §4.2.
func (s *GameState) advance(gi *gamedef.GameInfo) {
	if s.numNonFolded() <= 1 {
		s.Finished = true
		return
	}

	if s.numCalled() >= s.numActive() {
		active := s.numActive()
		if active > 1 {
			if s.Round == gi.NumRounds()-1 {
				s.Finished = true
				return
			}
			s.startRound(gi, s.Round+1)
			return
		}
		// Only ≤1 player can still act (others are all-in): fast-forward to
		// the final round and go to showdown.
		s.Round = gi.NumRounds() - 1
		s.Finished = true
		return
	}

	s.ActivePlayer = s.nextActingPlayer(s.ActivePlayer + 1)
	if s.ActivePlayer == -1 {
		// Defensive: everyone left is all-in: nothing left to decide.
		s.Round = gi.NumRounds() - 1
		s.Finished = true
	}
}

func (s *GameState) startRound(gi *gamedef.GameInfo, round int) {
	s.Round = round
	maxBlind := uint32(0)
	for _, b := range gi.Blinds {
		if b > maxBlind {
			maxBlind = b
		}
	}
	s.MinNoLimitRaiseTo = s.MaxSpent + maxBlind
	s.ActivePlayer = s.nextActingPlayer(int(gi.FirstPlayer[round]))
	if s.ActivePlayer == -1 {
		s.Round = gi.NumRounds() - 1
		s.Finished = true
	}
}
