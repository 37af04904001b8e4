package matchmaker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// Key layout:
//
//	set: km:pool:{pool}:{tableSize}   -> Set(playerID, ...)
//	kv : km:player:{playerID}         -> "pool:tableSize", locates the pool on cancel
//	kv : km:room:{roomID}             -> JSON Room
//	kv : km:playerRoom:{playerID}     -> roomID, the duplicate-join guard
//
// Player and room keys carry TTLs so crashed clients and finished matches
// cannot pin the pools forever.
func poolKey(pool string, tableSize int) string {
	return fmt.Sprintf("km:pool:%s:%d", pool, tableSize)
}
func playerKey(playerID string) string {
	return fmt.Sprintf("km:player:%s", playerID)
}
func roomKey(roomID string) string {
	return fmt.Sprintf("km:room:%s", roomID)
}
func playerRoomKey(playerID string) string {
	return fmt.Sprintf("km:playerRoom:%s", playerID)
}

func (r *redisRepo) Enqueue(ctx context.Context, pool string, tableSize int, playerID string, ttlSeconds int) error {
	p := r.rdb.Pipeline()
	p.SAdd(ctx, poolKey(pool, tableSize), playerID)
	p.Set(ctx, playerKey(playerID), fmt.Sprintf("%s:%d", pool, tableSize), time.Duration(ttlSeconds)*time.Second)
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) PopNRandom(ctx context.Context, pool string, tableSize int, n int) ([]string, error) {
	key := poolKey(pool, tableSize)
	// SPOP with a count removes n random members in one atomic step, so
	// two racing pops can never seat the same player twice.
	res, err := r.rdb.SPopN(ctx, key, int64(n)).Result()
	if err != nil {
		return nil, err
	}
	if len(res) > 0 {
		p := r.rdb.Pipeline()
		for _, id := range res {
			p.Del(ctx, playerKey(id))
		}
		_, _ = p.Exec(ctx)
	}
	return res, nil
}

func (r *redisRepo) Remove(ctx context.Context, playerID string) error {
	kv, err := r.rdb.Get(ctx, playerKey(playerID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	// The kv holds "pool:tableSize". Pool names never contain a colon.
	parts := strings.SplitN(kv, ":", 2)
	if len(parts) != 2 {
		_ = r.rdb.Del(ctx, playerKey(playerID)).Err()
		return nil
	}
	size, err := strconv.Atoi(parts[1])
	if err != nil {
		_ = r.rdb.Del(ctx, playerKey(playerID)).Err()
		return nil
	}

	poolK := poolKey(parts[0], size)
	playerK := playerKey(playerID)

	// Drop the member and the locator together; delete the set once empty
	// so abandoned pools do not accumulate.
	// KEYS[1] = playerKey, KEYS[2] = poolKey, ARGV[1] = playerID
	script := `
        redis.call("DEL", KEYS[1])
        redis.call("SREM", KEYS[2], ARGV[1])
        if redis.call("SCARD", KEYS[2]) == 0 then
            redis.call("DEL", KEYS[2])
        end
        return 1
    `
	if err := r.rdb.Eval(ctx, script, []string{playerK, poolK}, playerID).Err(); err != nil {
		// Some test servers lack EVAL; fall back to a non-atomic cleanup.
		p := r.rdb.Pipeline()
		p.SRem(ctx, poolK, playerID)
		p.Del(ctx, playerK)
		if _, execErr := p.Exec(ctx); execErr != nil {
			return execErr
		}
		if n, _ := r.rdb.SCard(ctx, poolK).Result(); n == 0 {
			_ = r.rdb.Del(ctx, poolK).Err()
		}
	}

	return nil
}

func (r *redisRepo) Count(ctx context.Context, pool string, tableSize int) (int64, error) {
	return r.rdb.SCard(ctx, poolKey(pool, tableSize)).Result()
}

// SaveRoom stores the formed room and marks every human seat as taken so
// repeat joins are rejected while the match runs.
func (r *redisRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	data, _ := json.Marshal(room)
	ttl := time.Duration(ttlSeconds) * time.Second
	p := r.rdb.Pipeline()
	p.Set(ctx, roomKey(room.ID), data, ttl)
	for _, id := range room.Players {
		p.Set(ctx, playerRoomKey(id), room.ID, ttl)
	}
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) GetPlayerRoom(ctx context.Context, playerID string) (string, error) {
	val, err := r.rdb.Get(ctx, playerRoomKey(playerID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// ReleaseRoom frees the room record and the seat guards once a match ends.
func (r *redisRepo) ReleaseRoom(ctx context.Context, roomID string, players []string) error {
	p := r.rdb.Pipeline()
	p.Del(ctx, roomKey(roomID))
	for _, id := range players {
		p.Del(ctx, playerRoomKey(id))
	}
	_, err := p.Exec(ctx)
	return err
}
