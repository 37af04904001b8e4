package storage

import (
	"context"
	"testing"

	"Kouppi/internal/rating"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func TestInitRedis(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	assert.NoError(t, InitRedis(mr.Addr(), "", 0))

	assert.NoError(t, Rdb.Set(Ctx, "k", "v", 0).Err())
	got, err := Rdb.Get(Ctx, "k").Result()
	assert.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestInitRedisBadAddr(t *testing.T) {
	assert.Error(t, InitRedis("127.0.0.1:1", "", 0))
}

// Without postgres the profile writes fail loudly and the rating read
// falls back to the default, so matchmaking keeps working.
func TestPostgresFallbacks(t *testing.T) {
	DB = nil
	ctx := context.Background()

	assert.ErrorIs(t, EnsureSchema(ctx), ErrNoPostgres)
	assert.ErrorIs(t, UpsertProfile(ctx, "p1", "Andreas"), ErrNoPostgres)
	assert.ErrorIs(t, ApplyMatchResult(ctx, "p1", 16, 2), ErrNoPostgres)
	_, err := GetProfile(ctx, "p1")
	assert.ErrorIs(t, err, ErrNoPostgres)

	assert.Equal(t, rating.DefaultRating, RatingOf(ctx, "p1"))
}
