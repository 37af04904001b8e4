package storage

import (
	"context"
	"database/sql"
	"errors"

	"Kouppi/internal/rating"

	_ "github.com/lib/pq"
)

var DB *sql.DB

var ErrNoPostgres = errors.New("storage: postgres not initialized")

func InitPostgres(dsn string) error {
	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	return DB.Ping()
}

// Profile is a player's persistent line: rating, trophies and the games
// counter. Nothing about a running round is ever stored.
type Profile struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Trophies int     `json:"trophies"`
	Games    int     `json:"games"`
}

// EnsureSchema creates the players table on startup.
func EnsureSchema(ctx context.Context) error {
	if DB == nil {
		return ErrNoPostgres
	}
	_, err := DB.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS players (
            id       TEXT PRIMARY KEY,
            name     TEXT NOT NULL DEFAULT '',
            rating   DOUBLE PRECISION NOT NULL DEFAULT 1000,
            trophies INTEGER NOT NULL DEFAULT 0,
            games    INTEGER NOT NULL DEFAULT 0
        )`)
	return err
}

// UpsertProfile registers a player id with its display name. Ratings and
// trophies are left alone; only the name follows the latest login.
func UpsertProfile(ctx context.Context, id, name string) error {
	if DB == nil {
		return ErrNoPostgres
	}
	_, err := DB.ExecContext(ctx, `
        INSERT INTO players (id, name) VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
		id, name)
	return err
}

// ApplyMatchResult folds one finished match into a player's line.
// Trophies clamp at zero; ratings float freely around the default.
func ApplyMatchResult(ctx context.Context, id string, ratingDelta, trophyDelta int) error {
	if DB == nil {
		return ErrNoPostgres
	}
	_, err := DB.ExecContext(ctx, `
        INSERT INTO players (id, name, rating, trophies, games)
        VALUES ($1, '', $2 + $3, GREATEST(0, $4), 1)
        ON CONFLICT (id) DO UPDATE SET
            rating   = players.rating + $3,
            trophies = GREATEST(0, players.trophies + $4),
            games    = players.games + 1`,
		id, rating.DefaultRating, ratingDelta, trophyDelta)
	return err
}

func GetProfile(ctx context.Context, id string) (Profile, error) {
	if DB == nil {
		return Profile{}, ErrNoPostgres
	}
	var p Profile
	err := DB.QueryRowContext(ctx, `
        SELECT id, name, rating, trophies, games FROM players WHERE id = $1`,
		id).Scan(&p.ID, &p.Name, &p.Rating, &p.Trophies, &p.Games)
	return p, err
}

// RatingOf is total: unknown players, a missing database or a failing
// query all come back as the default rating, so matchmaking never blocks
// on storage.
func RatingOf(ctx context.Context, id string) float64 {
	if DB == nil {
		return rating.DefaultRating
	}
	var r float64
	err := DB.QueryRowContext(ctx, `SELECT rating FROM players WHERE id = $1`, id).Scan(&r)
	if err != nil {
		return rating.DefaultRating
	}
	return r
}
