package main

import (
	"Kouppi/config"
	"Kouppi/internal/auth"
	"Kouppi/internal/game/bot"
	"Kouppi/internal/game/deck"
	"Kouppi/internal/game/engine"
	"Kouppi/internal/game/manager"
	"Kouppi/internal/matchmaker"
	"Kouppi/internal/middleware"
	"Kouppi/internal/rating"
	"Kouppi/internal/storage"
	"Kouppi/internal/utils"
	"Kouppi/internal/websocket"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	utils.Init()

	//-------------------------------------------------------
	// 1. Redis (queues + rooms), Postgres (profiles, optional)
	//-------------------------------------------------------
	if err := storage.InitRedis(
		config.C.Redis.Addr,
		config.C.Redis.Password,
		config.C.Redis.DB,
	); err != nil {
		utils.Error.Fatalf("Redis init failed: %v", err)
	}

	if dsn := config.C.Database.DSN; dsn != "" {
		if err := storage.InitPostgres(dsn); err != nil {
			utils.Print.Warn("Postgres unavailable, everyone plays at the default rating", "err", err)
		} else if err := storage.EnsureSchema(context.Background()); err != nil {
			utils.Error.Fatalf("Schema init failed: %v", err)
		}
	}

	//-------------------------------------------------------
	// 2. Gin + CORS
	//-------------------------------------------------------
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	//-------------------------------------------------------
	// 3. Hub (must be running before anything can broadcast)
	//-------------------------------------------------------
	hub := websocket.NewHub()
	go hub.Run()

	//-------------------------------------------------------
	// 4. GameManager (one session goroutine per table)
	//-------------------------------------------------------
	gameMgr := manager.NewGameManager(hub, tableConfig(), sessionOptions())
	gameMgr.RatingFor = storage.RatingOf
	gameMgr.OnResult = func(roomID string, results []manager.MatchResult) {
		for _, res := range results {
			if res.IsBot {
				continue
			}
			err := storage.ApplyMatchResult(context.Background(), res.PlayerID, res.RatingDelta, res.TrophyDelta)
			if err != nil && !errors.Is(err, storage.ErrNoPostgres) {
				utils.Error.Printf("ApplyMatchResult %s: %v", res.PlayerID, err)
			}
		}
	}
	hub.OnIncoming = gameMgr.HandlePlayerMessage

	//-------------------------------------------------------
	// 5. Matchmaker
	//-------------------------------------------------------
	repo := matchmaker.NewRedisRepo(storage.Rdb)
	svc := matchmaker.NewService(repo, config.C.Match.TTLSeconds, hub)
	svc.RatingFor = storage.RatingOf

	svc.OnRoomReady = func(room *matchmaker.Room) {
		utils.Info.Printf("Room ready: %s Players=%v Bots=%v", room.ID, room.Players, room.Bots)

		if err := gameMgr.StartRoom(room); err != nil {
			utils.Error.Printf("StartRoom error: %v", err)
		}
	}
	gameMgr.OnMatchEnd = func(roomID string, players []string) {
		if err := svc.Release(context.Background(), roomID, players); err != nil {
			utils.Error.Printf("Release %s: %v", roomID, err)
		}
	}

	authGroup := r.Group("/auth")
	{
		auth := auth.NewHandler()
		authGroup.GET("/nonce", auth.GetNonce)
		authGroup.POST("/nonce", auth.PostNonce)
		authGroup.POST("/login", auth.Login)
	}

	//-------------------------------------------------------
	// 6. Authenticated surface: websocket, matchmaking, profile
	//-------------------------------------------------------
	secret := ([]byte)(config.C.JWT.Secret)
	auth := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		auth.GET("/ws", websocket.ServeWS(hub))

		mh := matchmaker.NewHandler(svc)
		auth.POST("/match/join", mh.Join)
		auth.POST("/match/cancel", mh.Cancel)
		auth.POST("/match/practice", mh.Practice)

		auth.GET("/rooms", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"rooms": gameMgr.Rooms()})
		})
		auth.GET("/me", func(c *gin.Context) {
			id := c.GetString("playerID")
			p, err := storage.GetProfile(c.Request.Context(), id)
			if err != nil {
				p = storage.Profile{ID: id, Name: c.GetString("playerName"), Rating: rating.DefaultRating}
			}
			c.JSON(http.StatusOK, p)
		})
	}

	//-------------------------------------------------------
	// 7. Start
	//-------------------------------------------------------
	utils.Info.Printf("Server running on %s", config.C.Server.Port)
	r.Run(config.C.Server.Port)
}

// tableConfig maps the yaml game section onto the house rules every
// table starts from. A room's min-bet vote can still override MinBet.
func tableConfig() engine.TableConfig {
	g := config.C.Game

	policy, err := deck.ParsePolicy(g.DeckPolicy)
	if err != nil {
		utils.Error.Fatalf("Bad deck policy: %v", err)
	}

	cfg := engine.DefaultTableConfig()
	cfg.Ante = g.Ante
	cfg.StartingBankroll = g.StartingBankroll
	cfg.MinBet = g.MinBet
	cfg.Shistri = engine.ShistriConfig{
		Enabled: g.Shistri.Enabled,
		Percent: g.Shistri.Percent,
		MinChip: g.Shistri.MinChip,
	}
	cfg.DeckPolicy = policy
	cfg.DeckLowThreshold = g.DeckLowThreshold
	cfg.MaxPlayers = g.MaxPlayers
	cfg.Lang = g.Lang

	if err := cfg.Validate(); err != nil {
		utils.Error.Fatalf("Bad game config: %v", err)
	}
	return cfg
}

func sessionOptions() manager.SessionOptions {
	s := config.C.Session
	opts := manager.DefaultSessionOptions()
	if s.TurnSeconds > 0 {
		opts.TurnTimeout = time.Duration(s.TurnSeconds) * time.Second
	}
	if s.BotDelayMs > 0 {
		opts.BotDelay = time.Duration(s.BotDelayMs) * time.Millisecond
	}
	if s.StepDelayMs > 0 {
		opts.StepDelay = time.Duration(s.StepDelayMs) * time.Millisecond
	}
	if s.MaxRounds > 0 {
		opts.MaxRounds = s.MaxRounds
	}
	if s.MaxTurns > 0 {
		opts.MaxTurns = s.MaxTurns
	}
	opts.BotMode = bot.Stochastic
	return opts
}
