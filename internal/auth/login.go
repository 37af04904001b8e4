package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"Kouppi/config"
	"Kouppi/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LoginRequest is a guest login: pick a display name, spend a nonce.
type LoginRequest struct {
	Name  string `json:"name"`
	Nonce string `json:"nonce"`
}

type Handler struct {
	mu         sync.Mutex
	nonceStore map[string]bool
}

func NewHandler() *Handler {
	return &Handler{
		nonceStore: make(map[string]bool),
	}
}

// Login exchanges a fresh nonce and a display name for a guest identity:
// a uuid player id and a signed token carrying it.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 24 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must be 1-24 characters"})
		return
	}

	if !h.spendNonce(req.Nonce) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nonce"})
		return
	}

	playerID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub":  playerID,
		"name": name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtStr, err := token.SignedString([]byte(config.C.JWT.Secret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt generation failed"})
		return
	}

	// Best effort: keep the leaderboard name current.
	if storage.DB != nil {
		_ = storage.UpsertProfile(c.Request.Context(), playerID, name)
	}

	c.JSON(http.StatusOK, gin.H{
		"jwt":      jwtStr,
		"playerId": playerID,
		"name":     name,
	})
}

// spendNonce burns a nonce; each one logs in exactly once.
func (h *Handler) spendNonce(nonce string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.nonceStore[nonce] {
		return false
	}
	delete(h.nonceStore, nonce)
	return true
}
