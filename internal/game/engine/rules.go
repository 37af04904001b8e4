package engine

import "Kouppi/internal/game/deck"

// Rule helpers shared by the reducer, the bot policy and the clients.
// All of them are pure arithmetic over ranks and chip counts; suits
// never matter.

// GapSize counts the ranks strictly between the two upcards. Those are
// the ranks that win the turn. Pairs give -1, consecutive ranks give 0.
func GapSize(up [2]deck.Card) int {
	lo, hi := up[0].Rank, up[1].Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	return hi - lo - 1
}

// IsPair reports whether the upcards share a rank. A third card can
// never land strictly between them, so a wager is a guaranteed loss.
func IsPair(up [2]deck.Card) bool {
	return up[0].Rank == up[1].Rank
}

// IsConsecutive reports whether the upcards are adjacent ranks, which
// leaves no winning rank either.
func IsConsecutive(up [2]deck.Card) bool {
	return GapSize(up) == 0
}

// CanShistri reports whether the upcards leave exactly one winning
// rank.
func CanShistri(up [2]deck.Card) bool {
	return GapSize(up) == 1
}

// EffectiveMinBet lowers the configured minimum to the pot when the pot
// cannot cover it.
func EffectiveMinBet(minBet, pot int) int {
	if pot < minBet {
		return pot
	}
	return minBet
}

// LegalBetRange returns the inclusive bounds for an ordinary bet. A
// bankroll below the effective minimum collapses the range onto the
// full bankroll: the player may go all-in but nothing else.
func LegalBetRange(bankroll, pot, minBet int) (lo, hi int) {
	lo = EffectiveMinBet(minBet, pot)
	hi = bankroll
	if pot < hi {
		hi = pot
	}
	if bankroll < lo {
		return bankroll, bankroll
	}
	return lo, hi
}

// legalBet reports whether amount is a legal ordinary bet.
func legalBet(amount, bankroll, pot, minBet int) bool {
	if amount <= 0 {
		return false
	}
	lo, hi := LegalBetRange(bankroll, pot, minBet)
	return amount >= lo && amount <= hi
}

// ShistriBet computes the fixed declaration amount: a percentage of the
// pot, floored, but never below the configured chip.
func ShistriBet(pot, percent, minChip int) int {
	amt := pot * percent / 100
	if amt < minChip {
		amt = minChip
	}
	return amt
}

// winsAgainst reports whether the revealed card lands strictly between
// the upcards. Matching either boundary rank loses.
func winsAgainst(up [2]deck.Card, revealed deck.Card) bool {
	lo, hi := up[0].Rank, up[1].Rank
	if lo > hi {
		lo, hi = hi, lo
	}
	return revealed.Rank > lo && revealed.Rank < hi
}
