package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Kouppi/internal/game/deck"
)

func up(r1, r2 int) [2]deck.Card {
	return [2]deck.Card{
		{Rank: r1, Suit: deck.Clubs},
		{Rank: r2, Suit: deck.Diamonds},
	}
}

func TestGapSize(t *testing.T) {
	cases := []struct {
		r1, r2 int
		want   int
	}{
		{3, 9, 5},
		{9, 3, 5}, // order of the upcards must not matter
		{5, 7, 1},
		{5, 6, 0},
		{8, 8, -1},
		{1, 13, 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GapSize(up(tc.r1, tc.r2)), "gap of %d,%d", tc.r1, tc.r2)
	}
}

func TestPairAndConsecutive(t *testing.T) {
	assert.True(t, IsPair(up(8, 8)))
	assert.False(t, IsPair(up(8, 9)))

	assert.True(t, IsConsecutive(up(5, 6)))
	assert.True(t, IsConsecutive(up(6, 5)))
	assert.False(t, IsConsecutive(up(5, 7)))
	assert.False(t, IsConsecutive(up(5, 5)), "a pair is not consecutive")
}

func TestCanShistri(t *testing.T) {
	assert.True(t, CanShistri(up(5, 7)))
	assert.True(t, CanShistri(up(7, 5)))
	assert.False(t, CanShistri(up(5, 8)))
	assert.False(t, CanShistri(up(5, 6)))
	assert.False(t, CanShistri(up(5, 5)))
}

func TestEffectiveMinBet(t *testing.T) {
	assert.Equal(t, 10, EffectiveMinBet(10, 50))
	assert.Equal(t, 4, EffectiveMinBet(10, 4), "a short pot lowers the minimum")
	assert.Equal(t, 10, EffectiveMinBet(10, 10))
}

func TestLegalBetRange(t *testing.T) {
	lo, hi := LegalBetRange(100, 50, 10)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 50, hi)

	// the pot caps the maximum
	lo, hi = LegalBetRange(100, 30, 10)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 30, hi)

	// the bankroll caps the maximum
	lo, hi = LegalBetRange(25, 50, 10)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 25, hi)

	// a bankroll below the minimum collapses onto the all-in amount
	lo, hi = LegalBetRange(7, 50, 10)
	assert.Equal(t, 7, lo)
	assert.Equal(t, 7, hi)

	// a short pot lowers the minimum before the all-in rule applies
	lo, hi = LegalBetRange(100, 4, 10)
	assert.Equal(t, 4, lo)
	assert.Equal(t, 4, hi)
}

func TestLegalBet(t *testing.T) {
	cases := []struct {
		amount, bankroll, pot, minBet int
		want                          bool
	}{
		{5, 100, 50, 10, false},
		{10, 100, 50, 10, true},
		{50, 100, 50, 10, true},
		{51, 100, 50, 10, false},
		{7, 7, 50, 10, true},  // all-in below the minimum
		{6, 7, 50, 10, false}, // partial below the minimum stays illegal
		{0, 100, 50, 10, false},
		{-5, 100, 50, 10, false},
	}
	for _, tc := range cases {
		got := legalBet(tc.amount, tc.bankroll, tc.pot, tc.minBet)
		assert.Equal(t, tc.want, got, "bet %d with bankroll %d, pot %d, min %d", tc.amount, tc.bankroll, tc.pot, tc.minBet)
	}
}

func TestShistriBet(t *testing.T) {
	assert.Equal(t, 20, ShistriBet(200, 10, 5))
	assert.Equal(t, 5, ShistriBet(30, 10, 5), "the chip floor applies to small pots")
	assert.Equal(t, 5, ShistriBet(3, 10, 5), "the floor can exceed the pot; eligibility is checked elsewhere")
	assert.Equal(t, 12, ShistriBet(125, 10, 5), "fractions are floored")
}

func TestWinsAgainst(t *testing.T) {
	three9 := up(3, 9)
	cases := []struct {
		rank int
		want bool
	}{
		{6, true},
		{4, true},
		{8, true},
		{3, false}, // boundary rank loses
		{9, false},
		{2, false},
		{11, false},
		{1, false},
	}
	for _, tc := range cases {
		got := winsAgainst(three9, deck.Card{Rank: tc.rank, Suit: deck.Hearts})
		assert.Equal(t, tc.want, got, "reveal %d against 3..9", tc.rank)
	}

	// suits are irrelevant: a rank equal to an upcard loses even from
	// another suit
	assert.False(t, winsAgainst(three9, deck.Card{Rank: 9, Suit: deck.Spades}))

	// a pair leaves no winning rank at all
	for r := 1; r <= 13; r++ {
		assert.False(t, winsAgainst(up(7, 7), deck.Card{Rank: r, Suit: deck.Hearts}))
	}
}
