package deck

import (
	"errors"
	"fmt"

	"Kouppi/internal/game/rng"
)

// Suit of a card. Order matches the traditional club/diamond/heart/spade
// display order.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitGlyphs = []string{"♣", "♦", "♥", "♠"}

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return suitGlyphs[s]
}

// Card rank runs 1..13 with the ace always low (1). Suits never matter
// for comparisons, only for display.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

var rankGlyphs = map[int]string{1: "A", 11: "J", 12: "Q", 13: "K"}

func (c Card) String() string {
	r, ok := rankGlyphs[c.Rank]
	if !ok {
		r = fmt.Sprintf("%d", c.Rank)
	}
	return r + c.Suit.String()
}

// ---------------------
//        DECK
// ---------------------

// ErrEmpty is returned when a draw is requested and neither the stock
// nor the discard pile has any card left.
var ErrEmpty = errors.New("deck: no cards left to draw")

// Policy controls when the discard pile is shuffled back into the stock.
type Policy int

const (
	// SingleNoReshuffleUntilEmpty draws the stock down to nothing before
	// folding the discard pile back in.
	SingleNoReshuffleUntilEmpty Policy = iota
	// SingleReshuffleWhenLow folds the discard pile back in as soon as
	// the stock falls below the configured threshold.
	SingleReshuffleWhenLow
)

func (p Policy) String() string {
	switch p {
	case SingleNoReshuffleUntilEmpty:
		return "single_no_reshuffle_until_empty"
	case SingleReshuffleWhenLow:
		return "single_reshuffle_when_low"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "single_no_reshuffle_until_empty", "":
		return SingleNoReshuffleUntilEmpty, nil
	case "single_reshuffle_when_low":
		return SingleReshuffleWhenLow, nil
	default:
		return 0, fmt.Errorf("deck: unknown policy %q", s)
	}
}

// Deck is a value type: every operation returns a new Deck and leaves
// the receiver untouched, so game states that embed one can be copied
// and replayed. Cards held by the current turn live in neither pile;
// Cards plus Discard plus the held cards always form the full 52 set.
type Deck struct {
	Cards   []Card `json:"cards"`
	Discard []Card `json:"discard"`
}

// New returns the full 52-card stock in canonical order. Call Shuffle
// before dealing.
func New() Deck {
	cards := make([]Card, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := 1; r <= 13; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return Deck{Cards: cards}
}

// Shuffle returns a deck with the stock permuted by a Fisher-Yates pass
// driven by the stream.
func (d Deck) Shuffle(s rng.Stream) (Deck, rng.Stream) {
	cards := append([]Card(nil), d.Cards...)
	for i := len(cards) - 1; i > 0; i-- {
		var j int
		j, s = s.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{Cards: cards, Discard: d.Discard}, s
}

// Draw removes the top card of the stock. Depending on the policy the
// discard pile is reshuffled back in first; ErrEmpty is returned only
// when both piles are exhausted.
func (d Deck) Draw(s rng.Stream, p Policy, lowThreshold int) (Card, Deck, rng.Stream, error) {
	if p == SingleReshuffleWhenLow && len(d.Cards) < lowThreshold && len(d.Discard) > 0 {
		d, s = d.reshuffle(s)
	}
	if len(d.Cards) == 0 {
		if len(d.Discard) == 0 {
			return Card{}, d, s, ErrEmpty
		}
		d, s = d.reshuffle(s)
	}
	c := d.Cards[0]
	return c, Deck{Cards: d.Cards[1:], Discard: d.Discard}, s, nil
}

// Muck moves resolved table cards onto the discard pile.
func (d Deck) Muck(cards ...Card) Deck {
	discard := make([]Card, 0, len(d.Discard)+len(cards))
	discard = append(discard, d.Discard...)
	discard = append(discard, cards...)
	return Deck{Cards: d.Cards, Discard: discard}
}

// Remaining reports how many cards are left in the stock.
func (d Deck) Remaining() int {
	return len(d.Cards)
}

func (d Deck) reshuffle(s rng.Stream) (Deck, rng.Stream) {
	merged := make([]Card, 0, len(d.Cards)+len(d.Discard))
	merged = append(merged, d.Cards...)
	merged = append(merged, d.Discard...)
	return Deck{Cards: merged}.Shuffle(s)
}
