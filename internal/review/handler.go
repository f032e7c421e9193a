package review

import (
	"errors"
	"net/http"

	"cafeteria/internal/menu"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/reviews
// --------------------------------------------------

type voteRequest struct {
	FoodID  int64   `json:"food_id"`
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *Handler) RecordVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id and numeric rating required"})
		return
	}

	// Set by the optional auth middleware when a valid token is sent.
	var userID *string
	if id := c.GetString("userID"); id != "" {
		userID = &id
	}

	err := h.service.RecordVote(c.Request.Context(), req.FoodID, *req.Rating, userID, req.Comment)
	if err != nil {
		if errors.Is(err, ErrInvalidRating) || errors.Is(err, ErrInvalidFood) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --------------------------------------------------
// GET /api/reviews/items?date=YYYY-MM-DD&period=Lunch
// --------------------------------------------------
func (h *Handler) ReviewItems(c *gin.Context) {
	date := c.Query("date")
	if date != "" && !menu.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	items, err := h.service.ReviewItems(c.Request.Context(), date, c.Query("period"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if items == nil {
		items = []ReviewItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
