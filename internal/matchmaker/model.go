package matchmaker

import "time"

// JoinRequest enters a player into a queue pool. PlayerID comes from the
// JWT middleware, never from the payload. Pool is derived from the
// player's rating bucket when left empty.
type JoinRequest struct {
	PlayerID   string `json:"-"`
	Pool       string `json:"-"`
	TableSize  int    `json:"tableSize" binding:"required"` // 2..8
	MinBetVote int    `json:"minBetVote"`                   // 0 = abstain
}

// PracticeRequest asks for an instant table of one human plus bots.
type PracticeRequest struct {
	PlayerID   string `json:"-"`
	TableSize  int    `json:"tableSize" binding:"required"`
	Difficulty string `json:"difficulty"` // easy | normal | hard, empty = normal
	MinBetVote int    `json:"minBetVote"`
}

// JoinResponse reports whether the player is queued or seated. Rating and
// the current match window are echoed so the client can render the wait.
type JoinResponse struct {
	Queued    bool     `json:"queued"`
	RoomID    string   `json:"roomId,omitempty"`
	Players   []string `json:"players,omitempty"`
	Pool      string   `json:"pool"`
	TableSize int      `json:"tableSize"`
	Rating    float64  `json:"rating"`
	RangeLo   float64  `json:"rangeLo"`
	RangeHi   float64  `json:"rangeHi"`
}

// Room is a formed table. Players lists human seats in match order; Bots
// lists generated bot seat ids (practice rooms only). MinBetVotes carries
// whatever votes the seated humans cast while queueing.
type Room struct {
	ID          string
	Pool        string
	TableSize   int
	Players     []string
	Bots        []string
	BotSkill    string
	MinBetVotes []int
	CreatedAt   time.Time
}
