package manager

import (
	"sort"
	"sync"
	"time"

	"Kouppi/internal/game/bot"
	"Kouppi/internal/game/engine"
	"Kouppi/internal/rating"
	"Kouppi/internal/websocket"
)

// SessionOptions sets the pacing and safety rails of a table session.
// The caps guarantee a session terminates no matter how the chips move.
type SessionOptions struct {
	TurnTimeout time.Duration // human turn clock; a forced pass when it fires
	BotDelay    time.Duration // thinking pause before a bot acts
	StepDelay   time.Duration // display beat between a resolution and the next turn
	MaxRounds   int           // hard cap on rounds per match
	MaxTurns    int           // hard cap on turns per round
	BotMode     bot.Mode
	Seed        int64 // non-zero pins the engine RNG, for reproducible tables
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		TurnTimeout: 30 * time.Second,
		BotDelay:    900 * time.Millisecond,
		StepDelay:   1200 * time.Millisecond,
		MaxRounds:   200,
		MaxTurns:    500,
		BotMode:     bot.Stochastic,
	}
}

// normalized fills the fields that must never be zero. Zero delays are
// legal; a zero turn clock or cap is not.
func (o SessionOptions) normalized() SessionOptions {
	d := DefaultSessionOptions()
	if o.TurnTimeout <= 0 {
		o.TurnTimeout = d.TurnTimeout
	}
	if o.MaxRounds <= 0 {
		o.MaxRounds = d.MaxRounds
	}
	if o.MaxTurns <= 0 {
		o.MaxTurns = d.MaxTurns
	}
	return o
}

type intent struct {
	playerID string
	action   engine.Action
}

// MatchResult is one seat's final line.
type MatchResult struct {
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	IsBot       bool   `json:"isBot"`
	Place       int    `json:"place"`
	Bankroll    int    `json:"bankroll"`
	RatingDelta int    `json:"ratingDelta"`
	TrophyDelta int    `json:"trophyDelta"`
}

// Session drives one table. All engine access happens on the run
// goroutine; the mutex only guards the state copy Summary reads.
type Session struct {
	roomID   string
	humans   []string
	profiles map[string]bot.Profile
	hub      websocket.HubInterface
	opts     SessionOptions
	rated    bool

	intents chan intent

	ratingFor func(playerID string) float64
	onResult  func(results []MatchResult)
	onDone    func()

	mu    sync.Mutex
	state engine.GameState
}

func newSession(roomID string, g engine.GameState, humans []string, profiles map[string]bot.Profile, hub websocket.HubInterface, opts SessionOptions) *Session {
	return &Session{
		roomID:   roomID,
		humans:   humans,
		profiles: profiles,
		hub:      hub,
		opts:     opts.normalized(),
		intents:  make(chan intent, 8),
		state:    g,
	}
}

// submit hands a player intent to the run goroutine. False means the
// queue is full; the caller reports back to the player.
func (s *Session) submit(in intent) bool {
	select {
	case s.intents <- in:
		return true
	default:
		return false
	}
}

func (s *Session) run() {
	if s.onDone != nil {
		defer s.onDone()
	}
	g := s.snapshot()

	s.broadcast("state", stateView(s.roomID, g))

	for g.SolventCount() >= 2 && g.RoundNum < s.opts.MaxRounds {
		next, err := s.playRound(g)
		g = next
		if err != nil {
			break
		}
	}
	s.finish(g)
}

// playRound runs one full round. An error means the match cannot go on
// (not enough funded seats, dead deck), never a player mistake.
func (s *Session) playRound(g engine.GameState) (engine.GameState, error) {
	g, err := s.apply(g, engine.StartRound())
	if err != nil {
		return g, err
	}
	g, err = s.apply(g, engine.Ante())
	if err != nil {
		return g, err
	}
	g, err = s.apply(g, engine.DetermineStarter())
	if err != nil {
		return g, err
	}
	s.broadcast("round_started", roundView(s.roomID, g))

	for turns := 0; turns < s.opts.MaxTurns; turns++ {
		g, err = s.apply(g, engine.StartTurn())
		if err != nil {
			return g, err
		}
		s.broadcast("turn_started", turnView(s.roomID, g))

		g = s.playTurn(g)
		s.broadcast("turn_resolved", resolutionView(s.roomID, g))

		if g.Phase == engine.PhaseRoundEnd {
			break
		}
		s.pause(s.opts.StepDelay)
		g, err = s.apply(g, engine.NextPlayer())
		if err != nil {
			return g, err
		}
	}
	s.broadcast("round_ended", roundEndView(s.roomID, g))
	return g, nil
}

// playTurn resolves the current turn: bots decide, humans get the turn
// clock. A pass is always legal on a live turn, so this cannot stall.
func (s *Session) playTurn(g engine.GameState) engine.GameState {
	cur, ok := g.CurrentPlayer()
	if !ok {
		return g
	}

	if cur.IsBot {
		s.pause(s.opts.BotDelay)
		act, err := bot.Decide(g, s.profiles[cur.ID])
		if err != nil {
			act = engine.Pass(cur.ID)
		}
		next, err := s.apply(g, act)
		if err != nil {
			next, _ = s.apply(g, engine.Pass(cur.ID))
		}
		return next
	}

	clock := time.NewTimer(s.opts.TurnTimeout)
	defer clock.Stop()
	for {
		select {
		case in := <-s.intents:
			if in.action.Player != cur.ID {
				s.sendError(in.playerID, "not your turn")
				continue
			}
			next, err := s.apply(g, in.action)
			if err != nil {
				s.sendError(in.playerID, err.Error())
				continue
			}
			return next
		case <-clock.C:
			next, _ := s.apply(g, engine.Pass(cur.ID))
			return next
		}
	}
}

func (s *Session) finish(g engine.GameState) {
	results := s.results(g)
	if s.rated && s.onResult != nil {
		s.onResult(results)
	}
	s.broadcast("match_end", map[string]any{
		"roomId":  s.roomID,
		"round":   g.RoundNum,
		"pot":     g.Round.Pot,
		"results": results,
	})
}

// results ranks seats by final bankroll. Equal bankrolls share a place.
func (s *Session) results(g engine.GameState) []MatchResult {
	order := make([]engine.Player, len(g.Players))
	copy(order, g.Players)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Bankroll > order[j].Bankroll })

	places := make([]int, len(order))
	for i := range order {
		if i > 0 && order[i].Bankroll == order[i-1].Bankroll {
			places[i] = places[i-1]
		} else {
			places[i] = i + 1
		}
	}

	standings := make([]rating.Standing, len(order))
	for i, p := range order {
		r := rating.DefaultRating
		if !p.IsBot && s.ratingFor != nil {
			r = s.ratingFor(p.ID)
		}
		standings[i] = rating.Standing{PlayerID: p.ID, Rating: r, Place: places[i]}
	}
	deltas := rating.MatchDeltas(standings, rating.DefaultK)

	results := make([]MatchResult, len(order))
	for i, p := range order {
		results[i] = MatchResult{
			PlayerID:    p.ID,
			Name:        p.Name,
			IsBot:       p.IsBot,
			Place:       places[i],
			Bankroll:    p.Bankroll,
			RatingDelta: deltas[i],
			TrophyDelta: rating.TrophyDelta(places[i], len(order)),
		}
	}
	return results
}

// apply advances the engine and keeps the Summary copy current. On a
// rejected action the input state comes back untouched.
func (s *Session) apply(g engine.GameState, a engine.Action) (engine.GameState, error) {
	next, err := engine.Apply(g, a)
	if err != nil {
		return g, err
	}
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return next, nil
}

func (s *Session) snapshot() engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Summary is safe to call from any goroutine.
func (s *Session) Summary() RoomSummary {
	g := s.snapshot()
	ids := make([]string, len(g.Players))
	for i, p := range g.Players {
		ids[i] = p.ID
	}
	return RoomSummary{
		RoomID:  s.roomID,
		Players: ids,
		Round:   g.RoundNum,
		Pot:     g.Round.Pot,
		Phase:   g.Phase.String(),
	}
}

func (s *Session) broadcast(event string, data interface{}) {
	s.hub.BroadcastToPlayers(s.humans, websocket.OutgoingMessage{Event: event, Data: data})
}

func (s *Session) sendError(playerID, text string) {
	s.hub.SendToPlayer(playerID, websocket.OutgoingMessage{
		Event: "error",
		Data:  map[string]any{"error": text},
	})
}

func (s *Session) pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
