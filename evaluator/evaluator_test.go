package evaluator

import (
	"testing"

	"github.com/mccfr/abstractsolver/gamedef"
)

func TestEvaluate7RanksFlushOverStraight(t *testing.T) {
	t.Parallel()
	straight := []gamedef.Card{
		{Rank: 2, Suit: 0}, {Rank: 3, Suit: 1}, {Rank: 4, Suit: 2},
		{Rank: 5, Suit: 3}, {Rank: 6, Suit: 0}, {Rank: 0, Suit: 0}, {Rank: 1, Suit: 0},
	}
	flush := []gamedef.Card{
		{Rank: 2, Suit: 0}, {Rank: 4, Suit: 0}, {Rank: 6, Suit: 0},
		{Rank: 8, Suit: 0}, {Rank: 10, Suit: 0}, {Rank: 0, Suit: 1}, {Rank: 1, Suit: 2},
	}

	rStraight := Evaluate7(NewHand(13, straight...))
	rFlush := Evaluate7(NewHand(13, flush...))

	if rStraight.Type() != Straight {
		t.Fatalf("expected a straight, got %v", rStraight.Type())
	}
	if rFlush.Type() != Flush {
		t.Fatalf("expected a flush, got %v", rFlush.Type())
	}
	if rFlush <= rStraight {
		t.Fatalf("expected flush to outrank straight")
	}
}

func TestEvaluate7PairBeatsHighCard(t *testing.T) {
	t.Parallel()
	pair := []gamedef.Card{
		{Rank: 5, Suit: 0}, {Rank: 5, Suit: 1}, {Rank: 2, Suit: 2},
		{Rank: 7, Suit: 3}, {Rank: 9, Suit: 0}, {Rank: 0, Suit: 1}, {Rank: 1, Suit: 2},
	}
	high := []gamedef.Card{
		{Rank: 12, Suit: 0}, {Rank: 9, Suit: 1}, {Rank: 7, Suit: 2},
		{Rank: 5, Suit: 3}, {Rank: 3, Suit: 0}, {Rank: 1, Suit: 1}, {Rank: 0, Suit: 2},
	}

	rPair := Evaluate7(NewHand(13, pair...))
	rHigh := Evaluate7(NewHand(13, high...))

	if rPair.Type() != Pair {
		t.Fatalf("expected a pair, got %v", rPair.Type())
	}
	if rHigh.Type() != HighCard {
		t.Fatalf("expected a high card hand, got %v", rHigh.Type())
	}
	if rPair <= rHigh {
		t.Fatalf("expected pair to outrank high card")
	}
}

func TestHighCardEvaluatorPairBeatsUnpaired(t *testing.T) {
	t.Parallel()
	var he HighCardEvaluator

	paired := he.Rank([]gamedef.Card{{Rank: 0, Suit: 0}}, []gamedef.Card{{Rank: 0, Suit: 0}})
	unpaired := he.Rank([]gamedef.Card{{Rank: 2, Suit: 0}}, []gamedef.Card{{Rank: 1, Suit: 0}})

	if paired <= unpaired {
		t.Fatalf("expected a paired hole card to outrank a higher unpaired one")
	}
}
