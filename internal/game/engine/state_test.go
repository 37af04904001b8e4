package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSeats() []Seat {
	return []Seat{
		{ID: "p1", Name: "Andreas"},
		{ID: "p2", Name: "Eleni"},
	}
}

func TestInitGame(t *testing.T) {
	cfg := DefaultTableConfig()
	g, err := InitGame(testSeats(), 42, cfg)
	if err != nil {
		t.Fatalf("InitGame failed: %v", err)
	}

	assert.Equal(t, PhaseLobby, g.Phase)
	assert.Equal(t, 52, g.Deck.Remaining())
	assert.Empty(t, g.Deck.Discard)
	assert.Equal(t, -1, g.Round.StarterIndex)
	assert.Equal(t, -1, g.LastStarter)
	assert.Nil(t, g.Turn)
	for _, p := range g.Players {
		assert.Equal(t, cfg.StartingBankroll, p.Bankroll)
		assert.True(t, p.Active)
	}
	assert.Equal(t, 2*cfg.StartingBankroll, g.TotalChips())
}

func TestInitGameIsDeterministic(t *testing.T) {
	a, err := InitGame(testSeats(), 7, DefaultTableConfig())
	assert.NoError(t, err)
	b, err := InitGame(testSeats(), 7, DefaultTableConfig())
	assert.NoError(t, err)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed and roster should produce identical states")
	}

	c, err := InitGame(testSeats(), 8, DefaultTableConfig())
	assert.NoError(t, err)
	assert.NotEqual(t, a.Deck.Cards, c.Deck.Cards, "a different seed should shuffle differently")
}

func TestInitGameValidation(t *testing.T) {
	cfg := DefaultTableConfig()

	_, err := InitGame([]Seat{{ID: "p1"}}, 1, cfg)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, err = InitGame([]Seat{{ID: "p1"}, {ID: "p1"}}, 1, cfg)
	assert.Error(t, err, "duplicate ids must be rejected")

	_, err = InitGame([]Seat{{ID: "p1"}, {ID: ""}}, 1, cfg)
	assert.Error(t, err, "empty ids must be rejected")

	crowded := make([]Seat, cfg.MaxPlayers+1)
	for i := range crowded {
		crowded[i] = Seat{ID: string(rune('a' + i))}
	}
	_, err = InitGame(crowded, 1, cfg)
	assert.Error(t, err)
}

func TestTableConfigValidate(t *testing.T) {
	cfg := DefaultTableConfig()
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.Ante = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.StartingBankroll = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MinBet = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Shistri.Percent = 101
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Shistri.Enabled = false
	bad.Shistri.Percent = 0
	assert.NoError(t, bad.Validate(), "disabled shistri skips its own checks")

	bad = cfg
	bad.MaxPlayers = 1
	assert.Error(t, bad.Validate())
}

func TestPhaseAndKindNames(t *testing.T) {
	assert.Equal(t, "lobby", PhaseLobby.String())
	assert.Equal(t, "round", PhaseRound.String())
	assert.Equal(t, "roundEnd", PhaseRoundEnd.String())
	assert.Equal(t, "kouppi", ActKouppi.String())
	assert.Equal(t, "shistri", ResolutionShistri.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
