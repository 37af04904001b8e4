package engine

import (
	"errors"

	"Kouppi/internal/game/deck"
)

// Rejection errors returned by Apply. A rejected action never mutates
// the state it was applied to.
var (
	ErrIllegalPhase      = errors.New("engine: action not legal in the current phase")
	ErrNotPlayersTurn    = errors.New("engine: not this player's turn")
	ErrIllegalBetAmount  = errors.New("engine: bet amount outside the legal range")
	ErrIneligibleSpecial = errors.New("engine: player not eligible for this declaration")
	ErrNotEnoughPlayers  = errors.New("engine: not enough players able to play")
	ErrUnknownAction     = errors.New("engine: unknown action kind")

	// ErrEmptyDeck aliases the deck sentinel so callers can match it at
	// either layer.
	ErrEmptyDeck = deck.ErrEmpty
)
