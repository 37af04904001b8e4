package manager

import (
	"sort"

	"Kouppi/internal/game/rng"
)

// ResolveMinBetVote picks the table's minimum bet from the votes cast in
// the lobby. The most voted amount wins; a tie breaks on the seeded
// stream so replays of the same room agree. Returns 0 when nobody voted,
// which leaves the house default in place.
func ResolveMinBetVote(votes []int, seed int64) int {
	counts := make(map[int]int)
	best := 0
	for _, v := range votes {
		if v <= 0 {
			continue
		}
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	if best == 0 {
		return 0
	}

	var tied []int
	for v, c := range counts {
		if c == best {
			tied = append(tied, v)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}
	sort.Ints(tied)
	i, _ := rng.New(seed).Intn(len(tied))
	return tied[i]
}
