// Package play is the interactive collaborator described by the core: a
// human operator plays repeated hands against seats sampled from a trained
// average strategy, with a running chip ledger kept across the session.
package play

// Session accumulates each player's net chip result across every hand
// played in one run, rather than resetting after each showdown.
type Session struct {
	Totals []int64
	Hands  int
}

// NewSession starts a ledger for numPlayers seats, all at zero.
func NewSession(numPlayers int) *Session {
	return &Session{Totals: make([]int64, numPlayers)}
}

// Record folds one hand's payout into the running totals.
func (s *Session) Record(payout []int64) {
	for i, p := range payout {
		if i < len(s.Totals) {
			s.Totals[i] += p
		}
	}
	s.Hands++
}
