package matchmaker

import (
	"net/http"

	"Kouppi/internal/rating"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// POST /match/join  body: {tableSize, minBetVote?}
// Identity comes from the JWT middleware.
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.PlayerID = c.GetString("playerID")

	room, queued, err := h.svc.Join(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	r := h.svc.ratingOf(c.Request.Context(), req.PlayerID)
	lo, hi := rating.Range(r, 0)
	if queued {
		c.JSON(http.StatusOK, JoinResponse{
			Queued: true, Pool: rating.Bucket(r), TableSize: req.TableSize,
			Rating: r, RangeLo: lo, RangeHi: hi,
		})
		return
	}
	c.JSON(http.StatusOK, JoinResponse{
		Queued: false, RoomID: room.ID, Players: room.Players,
		Pool: room.Pool, TableSize: room.TableSize,
		Rating: r, RangeLo: lo, RangeHi: hi,
	})
}

// POST /match/cancel
func (h *Handler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), c.GetString("playerID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /match/practice  body: {tableSize, difficulty?, minBetVote?}
func (h *Handler) Practice(c *gin.Context) {
	var req PracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.PlayerID = c.GetString("playerID")

	room, err := h.svc.Practice(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, JoinResponse{
		Queued: false, RoomID: room.ID, Players: room.Players,
		Pool: room.Pool, TableSize: room.TableSize,
	})
}
