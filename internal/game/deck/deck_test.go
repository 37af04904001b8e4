package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Kouppi/internal/game/rng"
)

func cardSet(cards ...[]Card) map[Card]int {
	set := make(map[Card]int)
	for _, group := range cards {
		for _, c := range group {
			set[c]++
		}
	}
	return set
}

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New()
	assert.Equal(t, 52, len(d.Cards))
	assert.Empty(t, d.Discard)

	seen := cardSet(d.Cards)
	assert.Equal(t, 52, len(seen), "all cards should be unique")
	for c, n := range seen {
		if n != 1 {
			t.Fatalf("card %v appears %d times", c, n)
		}
		if c.Rank < 1 || c.Rank > 13 {
			t.Fatalf("card %v has rank out of range", c)
		}
	}
}

func TestShuffleIsSeededAndPure(t *testing.T) {
	d := New()

	s1 := rng.New(42)
	s2 := rng.New(42)
	a, _ := d.Shuffle(s1)
	b, _ := d.Shuffle(s2)
	assert.Equal(t, a.Cards, b.Cards, "same seed must give the same order")

	c, _ := d.Shuffle(rng.New(43))
	assert.NotEqual(t, a.Cards, c.Cards, "different seed should give a different order")

	// receiver untouched
	assert.Equal(t, New().Cards, d.Cards)

	// still a permutation of the full set
	assert.Equal(t, cardSet(New().Cards), cardSet(a.Cards))
}

func TestDrawRemovesTopCard(t *testing.T) {
	d, s := New().Shuffle(rng.New(1))
	top := d.Cards[0]

	c, nd, _, err := d.Draw(s, SingleNoReshuffleUntilEmpty, 0)
	if err != nil {
		t.Fatalf("unexpected draw error: %v", err)
	}
	assert.Equal(t, top, c)
	assert.Equal(t, 51, nd.Remaining())
	assert.Equal(t, 52, d.Remaining(), "draw must not mutate the receiver")
}

func TestMuckFeedsReshuffle(t *testing.T) {
	s := rng.New(7)
	d := Deck{Cards: []Card{{Rank: 4, Suit: Hearts}}}
	d = d.Muck(Card{Rank: 9, Suit: Spades}, Card{Rank: 2, Suit: Clubs})

	// first draw empties the stock
	c, d, s, err := d.Draw(s, SingleNoReshuffleUntilEmpty, 0)
	if err != nil {
		t.Fatalf("unexpected draw error: %v", err)
	}
	assert.Equal(t, Card{Rank: 4, Suit: Hearts}, c)

	// next draw must fold the discard pile back in
	c, d, _, err = d.Draw(s, SingleNoReshuffleUntilEmpty, 0)
	if err != nil {
		t.Fatalf("expected reshuffle, got error: %v", err)
	}
	assert.Contains(t, []int{9, 2}, c.Rank)
	assert.Empty(t, d.Discard)
}

func TestDrawEmptyDeck(t *testing.T) {
	var d Deck
	_, _, _, err := d.Draw(rng.New(1), SingleNoReshuffleUntilEmpty, 0)
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, _, err = d.Draw(rng.New(1), SingleReshuffleWhenLow, 5)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReshuffleWhenLowPolicy(t *testing.T) {
	d := Deck{
		Cards:   []Card{{Rank: 5, Suit: Clubs}, {Rank: 6, Suit: Clubs}},
		Discard: []Card{{Rank: 12, Suit: Hearts}, {Rank: 3, Suit: Diamonds}},
	}

	// below threshold: the discard pile is merged before the draw
	_, nd, _, err := d.Draw(rng.New(9), SingleReshuffleWhenLow, 4)
	if err != nil {
		t.Fatalf("unexpected draw error: %v", err)
	}
	assert.Equal(t, 3, nd.Remaining())
	assert.Empty(t, nd.Discard)

	// the strict policy leaves the discard pile alone while stock remains
	_, nd, _, err = d.Draw(rng.New(9), SingleNoReshuffleUntilEmpty, 4)
	if err != nil {
		t.Fatalf("unexpected draw error: %v", err)
	}
	assert.Equal(t, 1, nd.Remaining())
	assert.Equal(t, 2, len(nd.Discard))
}

func TestCardString(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{Card{Rank: 1, Suit: Clubs}, "A♣"},
		{Card{Rank: 10, Suit: Diamonds}, "10♦"},
		{Card{Rank: 11, Suit: Hearts}, "J♥"},
		{Card{Rank: 13, Suit: Spades}, "K♠"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.card.String())
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("single_reshuffle_when_low")
	assert.NoError(t, err)
	assert.Equal(t, SingleReshuffleWhenLow, p)

	p, err = ParsePolicy("")
	assert.NoError(t, err)
	assert.Equal(t, SingleNoReshuffleUntilEmpty, p)

	_, err = ParsePolicy("double_deck")
	assert.Error(t, err)
}
