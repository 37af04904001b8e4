package engine

import (
	"fmt"

	"Kouppi/internal/game/deck"
	"Kouppi/internal/game/rng"
)

// ---------------------
//       PHASES
// ---------------------

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseRound
	PhaseRoundEnd
)

var phaseNames = map[Phase]string{
	PhaseLobby:    "lobby",
	PhaseRound:    "round",
	PhaseRoundEnd: "roundEnd",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// ---------------------
//      TABLE SETUP
// ---------------------

// Seat describes one participant handed to InitGame.
type Seat struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsBot bool   `json:"isBot"`
}

// ShistriConfig governs the fixed-amount declaration available on a
// one-card gap. Percent is taken from the pot, MinChip floors the
// resulting amount.
type ShistriConfig struct {
	Enabled bool `json:"enabled"`
	Percent int  `json:"percent"`
	MinChip int  `json:"minChip"`
}

// TableConfig is fixed for the lifetime of a game. Any table vote on
// the minimum bet is resolved by the room layer before the config gets
// here.
type TableConfig struct {
	Ante             int           `json:"ante"`
	StartingBankroll int           `json:"startingBankroll"`
	MinBet           int           `json:"minBet"`
	Shistri          ShistriConfig `json:"shistri"`
	DeckPolicy       deck.Policy   `json:"deckPolicy"`
	DeckLowThreshold int           `json:"deckLowThreshold"`
	MaxPlayers       int           `json:"maxPlayers"`
	Lang             string        `json:"lang"`
}

// DefaultTableConfig returns the house rules used when a room does not
// override anything.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Ante:             10,
		StartingBankroll: 500,
		MinBet:           10,
		Shistri:          ShistriConfig{Enabled: true, Percent: 10, MinChip: 5},
		DeckPolicy:       deck.SingleNoReshuffleUntilEmpty,
		DeckLowThreshold: 8,
		MaxPlayers:       6,
		Lang:             "en",
	}
}

func (c TableConfig) Validate() error {
	if c.Ante < 1 {
		return fmt.Errorf("ante must be at least 1, got %d", c.Ante)
	}
	if c.StartingBankroll < 1 {
		return fmt.Errorf("startingBankroll must be at least 1, got %d", c.StartingBankroll)
	}
	if c.MinBet < 1 {
		return fmt.Errorf("minBet must be at least 1, got %d", c.MinBet)
	}
	if c.Shistri.Enabled {
		if c.Shistri.Percent < 1 || c.Shistri.Percent > 100 {
			return fmt.Errorf("shistri percent must be in 1..100, got %d", c.Shistri.Percent)
		}
		if c.Shistri.MinChip < 1 {
			return fmt.Errorf("shistri minChip must be at least 1, got %d", c.Shistri.MinChip)
		}
	}
	if c.DeckPolicy == deck.SingleReshuffleWhenLow && c.DeckLowThreshold < 1 {
		return fmt.Errorf("deckLowThreshold must be at least 1 for the low-reshuffle policy")
	}
	if c.MaxPlayers < 2 {
		return fmt.Errorf("maxPlayers must be at least 2, got %d", c.MaxPlayers)
	}
	return nil
}

// ---------------------
//     GAME STATE
// ---------------------

// Player holds per-seat money and liveness. Active drops when a player
// goes bankrupt or cannot cover the ante; seating order never changes.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bankroll int    `json:"bankroll"`
	IsBot    bool   `json:"isBot"`
	Active   bool   `json:"active"`
}

// RoundInfo tracks the live round. StarterIndex is -1 until
// determineStarter has run.
type RoundInfo struct {
	StarterIndex int `json:"starterIndex"`
	Pot          int `json:"pot"`
}

// TurnInfo describes the current turn. Bet and Revealed are filled by
// the resolving action and stay visible until the next startTurn.
type TurnInfo struct {
	PlayerID string       `json:"playerId"`
	Upcards  [2]deck.Card `json:"upcards"`
	Bet      int          `json:"bet"`
	Revealed *deck.Card   `json:"revealed,omitempty"`
}

// ResolutionKind tags how a turn was resolved.
type ResolutionKind int

const (
	ResolutionPass ResolutionKind = iota
	ResolutionBet
	ResolutionKouppi
	ResolutionShistri
)

var resolutionNames = map[ResolutionKind]string{
	ResolutionPass:    "pass",
	ResolutionBet:     "bet",
	ResolutionKouppi:  "kouppi",
	ResolutionShistri: "shistri",
}

func (k ResolutionKind) String() string {
	if s, ok := resolutionNames[k]; ok {
		return s
	}
	return "unknown"
}

// Resolution records the outcome of the last acted turn for display.
// It is overwritten by the next startTurn.
type Resolution struct {
	Kind     ResolutionKind `json:"kind"`
	PlayerID string         `json:"playerId"`
	Upcards  [2]deck.Card   `json:"upcards"`
	Revealed *deck.Card     `json:"revealed,omitempty"`
	Amount   int            `json:"amount"`
	Win      bool           `json:"win"`
}

// GameState is the root container the reducer folds actions over. It is
// plain data: the RNG stream, deck and players are all values, so two
// states can be compared with reflect.DeepEqual and a seeded game
// replays identically.
//
// While the phase is Round, either an actionable turn is in progress
// (Turn set, AwaitNext false) or the engine is waiting for the caller
// to advance (AwaitNext true). The two flags are never both "idle".
type GameState struct {
	Phase          Phase       `json:"phase"`
	Players        []Player    `json:"players"`
	CurrentIndex   int         `json:"currentIndex"`
	Round          RoundInfo   `json:"round"`
	RoundNum       int         `json:"roundNum"`
	LastStarter    int         `json:"lastStarter"`
	Turn           *TurnInfo   `json:"turn,omitempty"`
	LastResolution *Resolution `json:"lastResolution,omitempty"`
	AwaitNext      bool        `json:"awaitNext"`
	Deck           deck.Deck   `json:"deck"`
	Rand           rng.Stream  `json:"rand"`
	Config         TableConfig `json:"config"`
	Log            []string    `json:"log"`
}

// InitGame builds the initial lobby state. The seed must be decided by
// the caller; the engine never reads the clock.
func InitGame(seats []Seat, seed int64, cfg TableConfig) (GameState, error) {
	if err := cfg.Validate(); err != nil {
		return GameState{}, err
	}
	if len(seats) < 2 {
		return GameState{}, ErrNotEnoughPlayers
	}
	if len(seats) > cfg.MaxPlayers {
		return GameState{}, fmt.Errorf("engine: %d seats exceed the table limit of %d", len(seats), cfg.MaxPlayers)
	}

	players := make([]Player, 0, len(seats))
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if s.ID == "" {
			return GameState{}, fmt.Errorf("engine: seat with empty id")
		}
		if seen[s.ID] {
			return GameState{}, fmt.Errorf("engine: duplicate seat id %q", s.ID)
		}
		seen[s.ID] = true
		players = append(players, Player{
			ID:       s.ID,
			Name:     s.Name,
			Bankroll: cfg.StartingBankroll,
			IsBot:    s.IsBot,
			Active:   true,
		})
	}

	stream := rng.New(seed)
	d, stream := deck.New().Shuffle(stream)

	return GameState{
		Phase:        PhaseLobby,
		Players:      players,
		CurrentIndex: 0,
		Round:        RoundInfo{StarterIndex: -1},
		LastStarter:  -1,
		Deck:         d,
		Rand:         stream,
		Config:       cfg,
	}, nil
}

// ---------------------
//      ACCESSORS
// ---------------------

// CurrentPlayer returns a copy of the seat whose turn it is.
func (g GameState) CurrentPlayer() (Player, bool) {
	if g.CurrentIndex < 0 || g.CurrentIndex >= len(g.Players) {
		return Player{}, false
	}
	return g.Players[g.CurrentIndex], true
}

// PlayerByID returns a copy of the named seat.
func (g GameState) PlayerByID(id string) (Player, bool) {
	for _, p := range g.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// ActiveCount reports how many seats are still dealt into the round.
func (g GameState) ActiveCount() int {
	n := 0
	for _, p := range g.Players {
		if p.Active {
			n++
		}
	}
	return n
}

// SolventCount reports how many seats still hold chips. The match ends
// when this drops below two.
func (g GameState) SolventCount() int {
	n := 0
	for _, p := range g.Players {
		if p.Bankroll > 0 {
			n++
		}
	}
	return n
}

// TotalChips sums the pot and every bankroll. It is constant for the
// lifetime of a game.
func (g GameState) TotalChips() int {
	total := g.Round.Pot
	for _, p := range g.Players {
		total += p.Bankroll
	}
	return total
}

// nextActiveIndex walks the seating order starting after from,
// wrapping, and returns the first active seat. Returns -1 when no seat
// is active.
func (g GameState) nextActiveIndex(from int) int {
	n := len(g.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if g.Players[i].Active {
			return i
		}
	}
	return -1
}
