package rating

import (
	"fmt"
	"math"
)

// Classic Elo with K=32, plus the trophy ladder shown in the casual UI
// and the banding formulas the matchmaker queues with.

const (
	DefaultK      = 32.0
	DefaultRating = 1000.0
)

// Expected returns the probability of a beating b.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// Delta returns the rating change for one pairwise result. score is 1
// for a win, 0.5 for a tie, 0 for a loss.
func Delta(a, b, score, k float64) float64 {
	return k * (score - Expected(a, b))
}

// Standing is one seat's final placement next to its current rating.
// Places are 1-based and ties share a place.
type Standing struct {
	PlayerID string
	Rating   float64
	Place    int
}

// MatchDeltas scores a multi-seat match as the mean of its pairwise
// Elo results: every other seat counts as one opponent beaten, tied
// with or lost to, and the K-weighted deltas are averaged so table
// size does not inflate the swing.
func MatchDeltas(standings []Standing, k float64) []int {
	n := len(standings)
	out := make([]int, n)
	if n < 2 {
		return out
	}
	for i, a := range standings {
		sum := 0.0
		for j, b := range standings {
			if i == j {
				continue
			}
			score := 0.5
			switch {
			case a.Place < b.Place:
				score = 1
			case a.Place > b.Place:
				score = 0
			}
			sum += Delta(a.Rating, b.Rating, score, k)
		}
		out[i] = int(math.Round(sum / float64(n-1)))
	}
	return out
}

// TrophyDelta maps a placement to the casual ladder: the winner takes
// +players, the last seat pays players-1, and the seats between fall
// on the line connecting the two.
func TrophyDelta(place, players int) int {
	if players < 2 || place < 1 || place > players {
		return 0
	}
	top := float64(players)
	bottom := float64(-(players - 1))
	frac := float64(place-1) / float64(players-1)
	return int(math.Round(top + (bottom-top)*frac))
}

// Bucket maps a rating to the queue pool it waits in. Pools are 200
// points wide.
func Bucket(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	band := int(rating) / 200 * 200
	return fmt.Sprintf("elo-%d", band)
}

// Range is the window a queued player may be matched in. It opens at
// ±100 and widens by 25 points for every 5 seconds waited, capped at
// ±400.
func Range(rating float64, waitSeconds int) (lo, hi float64) {
	width := 100.0 + 25.0*float64(waitSeconds/5)
	if width > 400 {
		width = 400
	}
	return rating - width, rating + width
}
