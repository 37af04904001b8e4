package matchmaker

import "context"

// Repo is the queue-pool store. A pool is keyed by name plus table size.
//
// Implementations may additionally provide any of the optional methods the
// Service probes for with type assertions: SaveRoom, GetPlayerRoom,
// ReleaseRoom.
type Repo interface {
	// Enqueue adds a player to a pool. The ttl bounds how long a stale
	// entry may linger if the player vanishes without cancelling.
	Enqueue(ctx context.Context, pool string, tableSize int, playerID string, ttlSeconds int) error
	// PopNRandom atomically removes and returns n random members once the
	// pool can seat them. Fewer than n returned means no table yet.
	PopNRandom(ctx context.Context, pool string, tableSize int, n int) ([]string, error)
	// Remove takes a player out of whatever pool they wait in.
	Remove(ctx context.Context, playerID string) error
	// Count reports how many players wait in a pool.
	Count(ctx context.Context, pool string, tableSize int) (int64, error)
}
