package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"Kouppi/internal/game/bot"
	"Kouppi/internal/game/engine"
	"Kouppi/internal/matchmaker"
	"Kouppi/internal/rating"
	"Kouppi/internal/websocket"
)

// GameManager owns every live table session.
type GameManager struct {
	mu           sync.RWMutex
	sessions     map[string]*Session // roomID -> session
	playerToRoom map[string]string   // playerID -> roomID
	hub          websocket.HubInterface
	table        engine.TableConfig
	opts         SessionOptions

	// RatingFor resolves a player's rating for match deltas. Nil means
	// everyone plays at the default rating.
	RatingFor func(ctx context.Context, playerID string) float64

	// OnResult receives the final lines of a rated match for persistence.
	OnResult func(roomID string, results []MatchResult)

	// OnMatchEnd runs after a session is torn down, so the matchmaker
	// can release its seat guards.
	OnMatchEnd func(roomID string, players []string)
}

func NewGameManager(hub websocket.HubInterface, table engine.TableConfig, opts SessionOptions) *GameManager {
	return &GameManager{
		sessions:     make(map[string]*Session),
		playerToRoom: make(map[string]string),
		hub:          hub,
		table:        table,
		opts:         opts.normalized(),
	}
}

// StartRoom seats a matched room at a table and starts its session.
func (m *GameManager) StartRoom(r *matchmaker.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[r.ID]; ok {
		return fmt.Errorf("session for room %s exists", r.ID)
	}

	cfg := m.table
	if v := ResolveMinBetVote(r.MinBetVotes, roomSeed(r.ID)); v > 0 {
		cfg.MinBet = v
	}

	seats := make([]engine.Seat, 0, len(r.Players)+len(r.Bots))
	for _, id := range r.Players {
		seats = append(seats, engine.Seat{ID: id, Name: m.displayName(id)})
	}
	skill, err := bot.ParseDifficulty(r.BotSkill)
	if err != nil {
		return err
	}
	profiles := make(map[string]bot.Profile, len(r.Bots))
	for i, id := range r.Bots {
		seats = append(seats, engine.Seat{ID: id, Name: fmt.Sprintf("Bot %d", i+1), IsBot: true})
		profiles[id] = bot.NewProfile(m.opts.BotMode, skill)
	}

	seed := m.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano() ^ roomSeed(r.ID)
	}
	g, err := engine.InitGame(seats, seed, cfg)
	if err != nil {
		return err
	}

	sess := newSession(r.ID, g, r.Players, profiles, m.hub, m.opts)
	sess.rated = len(r.Bots) == 0
	sess.ratingFor = func(playerID string) float64 {
		if m.RatingFor == nil {
			return rating.DefaultRating
		}
		return m.RatingFor(context.Background(), playerID)
	}
	sess.onResult = func(results []MatchResult) {
		if m.OnResult != nil {
			m.OnResult(r.ID, results)
		}
	}
	humans := append([]string(nil), r.Players...)
	sess.onDone = func() { m.teardown(r.ID, humans) }

	m.sessions[r.ID] = sess
	for _, p := range r.Players {
		m.playerToRoom[p] = r.ID
	}

	go sess.run()
	return nil
}

func (m *GameManager) teardown(roomID string, players []string) {
	m.mu.Lock()
	delete(m.sessions, roomID)
	for _, p := range players {
		delete(m.playerToRoom, p)
	}
	m.mu.Unlock()

	if m.OnMatchEnd != nil {
		m.OnMatchEnd(roomID, players)
	}
}

// HandlePlayerMessage is the single entry for hub traffic.
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	m.mu.RLock()
	roomID := m.playerToRoom[msg.From]
	sess := m.sessions[roomID]
	m.mu.RUnlock()

	if sess == nil {
		return
	}

	switch msg.Event {

	case "player_action":
		act, err := parseIntent(msg.From, msg.Data)
		if err != nil {
			m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
				Event: "error",
				Data:  map[string]any{"error": err.Error()},
			})
			return
		}
		if !sess.submit(intent{playerID: msg.From, action: act}) {
			m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
				Event: "error",
				Data:  map[string]any{"error": "table is busy, try again"},
			})
		}

	case "chat":
		m.hub.BroadcastToPlayers(sess.humans, websocket.OutgoingMessage{
			Event: "chat",
			Data: map[string]any{
				"from": msg.From,
				"name": msg.Name,
				"text": msg.Data,
			},
		})
	}
}

// playerIntent is the wire shape of a player_action payload.
type playerIntent struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// parseIntent validates a raw payload at the boundary before it may
// reach a session. The engine re-checks everything; this only rejects
// shapes that could never be legal.
func parseIntent(from string, data interface{}) (engine.Action, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return engine.Action{}, fmt.Errorf("bad action payload")
	}
	var in playerIntent
	if err := json.Unmarshal(raw, &in); err != nil {
		return engine.Action{}, fmt.Errorf("bad action payload")
	}
	switch in.Action {
	case "pass":
		return engine.Pass(from), nil
	case "bet":
		if in.Amount <= 0 {
			return engine.Action{}, fmt.Errorf("bet amount must be positive")
		}
		return engine.Bet(from, in.Amount), nil
	case "kouppi":
		return engine.Kouppi(from), nil
	case "shistri":
		return engine.Shistri(from), nil
	default:
		return engine.Action{}, fmt.Errorf("unknown action %q", in.Action)
	}
}

// RoomSummary is the /rooms listing line for one table.
type RoomSummary struct {
	RoomID  string   `json:"roomId"`
	Players []string `json:"players"`
	Round   int      `json:"round"`
	Pot     int      `json:"pot"`
	Phase   string   `json:"phase"`
}

// Rooms snapshots every live session.
func (m *GameManager) Rooms() []RoomSummary {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	out := make([]RoomSummary, len(sessions))
	for i, s := range sessions {
		out[i] = s.Summary()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out
}

func (m *GameManager) displayName(id string) string {
	if c, ok := m.hub.ClientByID(id); ok && c != nil && c.Name != "" {
		return c.Name
	}
	return id
}

// roomSeed folds a room id into a stable seed for per-room randomness.
func roomSeed(roomID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(roomID))
	return int64(h.Sum64())
}
