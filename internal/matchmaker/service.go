package matchmaker

import (
	"Kouppi/internal/game/bot"
	"Kouppi/internal/rating"
	"Kouppi/internal/websocket"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo      Repo
	playerTTL int // seconds, bounds stale queue entries
	hub       HubBroadcaster

	// OnRoomReady runs once per formed room, on its own goroutine.
	OnRoomReady func(*Room)

	// RatingFor resolves a player's rating for pool bucketing. Nil means
	// everyone queues at the default rating.
	RatingFor func(ctx context.Context, playerID string) float64

	// Min-bet votes are held here between enqueue and room formation. The
	// hub is process-local, so matched players are on this instance too.
	mu    sync.Mutex
	votes map[string]int
}

type HubBroadcaster interface {
	BroadcastToPlayers(ids []string, msg websocket.OutgoingMessage)
}

func NewService(repo Repo, playerTTL int, hub HubBroadcaster) *Service {
	return &Service{
		repo:      repo,
		playerTTL: playerTTL,
		hub:       hub,
		votes:     make(map[string]int),
	}
}

func (s *Service) ratingOf(ctx context.Context, playerID string) float64 {
	if s.RatingFor == nil {
		return rating.DefaultRating
	}
	return s.RatingFor(ctx, playerID)
}

func validTableSize(n int) bool { return n >= 2 && n <= 8 }

// Join enqueues the player and tries to form a table immediately. Returns
// the room when one formed, otherwise queued=true.
func (s *Service) Join(ctx context.Context, req JoinRequest) (*Room, bool, error) {
	if !validTableSize(req.TableSize) {
		return nil, false, errors.New("invalid tableSize")
	}
	if err := s.guardNotSeated(ctx, req.PlayerID); err != nil {
		return nil, false, err
	}

	// Players queue among peers of similar strength.
	if req.Pool == "" {
		req.Pool = rating.Bucket(s.ratingOf(ctx, req.PlayerID))
	}

	if err := s.repo.Enqueue(ctx, req.Pool, req.TableSize, req.PlayerID, s.playerTTL); err != nil {
		return nil, false, err
	}
	s.recordVote(req.PlayerID, req.MinBetVote)

	for {
		cnt, err := s.repo.Count(ctx, req.Pool, req.TableSize)
		if err != nil {
			return nil, false, err
		}
		if int(cnt) < req.TableSize {
			return nil, true, nil
		}
		ids, err := s.repo.PopNRandom(ctx, req.Pool, req.TableSize, req.TableSize)
		if err != nil {
			return nil, false, err
		}
		if len(ids) == req.TableSize {
			room := &Room{
				ID:          uuid.NewString(),
				Pool:        req.Pool,
				TableSize:   req.TableSize,
				Players:     ids,
				MinBetVotes: s.takeVotes(ids),
				CreatedAt:   time.Now(),
			}
			s.finishRoom(ctx, room)
			return room, false, nil
		}
		if len(ids) == 0 {
			return nil, true, nil
		}
		// Lost the pop race. The pop still removed these members, so put
		// them back and look again; a table may complete on the recheck.
		for _, id := range ids {
			_ = s.repo.Enqueue(ctx, req.Pool, req.TableSize, id, s.playerTTL)
		}
	}
}

// Practice forms an instant room of one human plus bots. The player is
// pulled out of any queue they were waiting in first.
func (s *Service) Practice(ctx context.Context, req PracticeRequest) (*Room, error) {
	if !validTableSize(req.TableSize) {
		return nil, errors.New("invalid tableSize")
	}
	skill, err := bot.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	if err := s.guardNotSeated(ctx, req.PlayerID); err != nil {
		return nil, err
	}
	if err := s.repo.Remove(ctx, req.PlayerID); err != nil {
		return nil, err
	}
	s.recordVote(req.PlayerID, req.MinBetVote)

	bots := make([]string, 0, req.TableSize-1)
	for i := 1; i < req.TableSize; i++ {
		bots = append(bots, fmt.Sprintf("bot-%d", i))
	}
	room := &Room{
		ID:          uuid.NewString(),
		Pool:        "practice",
		TableSize:   req.TableSize,
		Players:     []string{req.PlayerID},
		Bots:        bots,
		BotSkill:    skill.String(),
		MinBetVotes: s.takeVotes([]string{req.PlayerID}),
		CreatedAt:   time.Now(),
	}
	s.finishRoom(ctx, room)
	return room, nil
}

// finishRoom persists the room, notifies the seated players and hands the
// room to the game layer.
func (s *Service) finishRoom(ctx context.Context, room *Room) {
	if saver, ok := s.repo.(interface {
		SaveRoom(context.Context, *Room, int) error
	}); ok {
		if err := saver.SaveRoom(ctx, room, s.playerTTL); err != nil {
			fmt.Println("matchmaker: SaveRoom error:", err)
		}
	}

	s.hub.BroadcastToPlayers(room.Players, websocket.OutgoingMessage{
		Event: "matched",
		Data: map[string]any{
			"roomId":    room.ID,
			"pool":      room.Pool,
			"tableSize": room.TableSize,
			"players":   room.Players,
			"bots":      room.Bots,
		},
	})

	if s.OnRoomReady != nil {
		go s.OnRoomReady(room)
	}
}

// guardNotSeated rejects players already seated at a live table.
func (s *Service) guardNotSeated(ctx context.Context, playerID string) error {
	checker, ok := s.repo.(interface {
		GetPlayerRoom(ctx context.Context, playerID string) (string, error)
	})
	if !ok {
		return nil
	}
	roomID, _ := checker.GetPlayerRoom(ctx, playerID)
	if roomID != "" {
		return fmt.Errorf("player %s already in room %s", playerID, roomID)
	}
	return nil
}

func (s *Service) Cancel(ctx context.Context, playerID string) error {
	s.mu.Lock()
	delete(s.votes, playerID)
	s.mu.Unlock()
	return s.repo.Remove(ctx, playerID)
}

// Release frees the room record and seat guards once a match ends.
func (s *Service) Release(ctx context.Context, roomID string, players []string) error {
	releaser, ok := s.repo.(interface {
		ReleaseRoom(ctx context.Context, roomID string, players []string) error
	})
	if !ok {
		return nil
	}
	return releaser.ReleaseRoom(ctx, roomID, players)
}

func (s *Service) recordVote(playerID string, vote int) {
	if vote <= 0 {
		return
	}
	s.mu.Lock()
	s.votes[playerID] = vote
	s.mu.Unlock()
}

// takeVotes collects and clears the votes of the seated players. Players
// who queued on another instance simply have no vote here.
func (s *Service) takeVotes(ids []string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var votes []int
	for _, id := range ids {
		if v, ok := s.votes[id]; ok {
			votes = append(votes, v)
			delete(s.votes, id)
		}
	}
	return votes
}
