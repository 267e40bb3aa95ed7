// Package cardabs buckets a player's private information (hole cards plus
// whatever of the board is visible) into a small BucketId so the solver's
// regret/strategy tables stay tractable on games too large to index by
// exact card combination.
package cardabs

import "github.com/mccfr/abstractsolver/gamedef"

// BucketId identifies one information-abstraction class within a round.
type BucketId uint32

// CardAbstraction maps a player's private hand plus the board visible at a
// round to a BucketId.
type CardAbstraction interface {
	GetBucket(gi *gamedef.GameInfo, round int, board []gamedef.Card, hole []gamedef.Card) BucketId
}

// NoBuckets is a lossless perfect-identification abstraction: distinct card
// sets always land in distinct buckets. It is only tractable for games with
// a handful of cards (Kuhn, Leduc, small synthetic games); it is useless as
// compression on a full 52-card deck.
type NoBuckets struct{}

// GetBucket implements CardAbstraction. Hole cards are positionally mixed
// first, then the board, each as rank*num_suits + suit against a running
// base of num_suits*num_ranks.
func (NoBuckets) GetBucket(gi *gamedef.GameInfo, round int, board []gamedef.Card, hole []gamedef.Card) BucketId {
	base := uint32(gi.NumSuits()) * uint32(gi.NumRanks())
	bucket := uint32(0)
	for _, c := range hole {
		bucket = bucket*base + uint32(c.Rank)*uint32(gi.NumSuits()) + uint32(c.Suit)
	}
	for _, c := range board {
		bucket = bucket*base + uint32(c.Rank)*uint32(gi.NumSuits()) + uint32(c.Suit)
	}
	return BucketId(bucket)
}

// LosslessBuckets is reserved for a suit-isomorphism reduction: collapsing
// hands that differ only by a permutation of suits into one bucket. Not
// needed by anything this solver currently trains against; GetBucket panics
// so a caller cannot silently get wrong answers from an unimplemented path.
type LosslessBuckets struct{}

func (LosslessBuckets) GetBucket(gi *gamedef.GameInfo, round int, board []gamedef.Card, hole []gamedef.Card) BucketId {
	panic("cardabs: LosslessBuckets is not implemented")
}
