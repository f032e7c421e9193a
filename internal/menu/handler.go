package menu

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /api/menu?date=YYYY-MM-DD
// --------------------------------------------------
func (h *Handler) GetMenu(c *gin.Context) {
	requested := c.Query("date")
	if requested != "" && !ValidDate(requested) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	page, err := h.service.MenuForDate(c.Request.Context(), requested)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// --------------------------------------------------
// GET /api/menu/dates
// --------------------------------------------------
func (h *Handler) ListDates(c *gin.Context) {
	dates, err := h.service.ListDates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if dates == nil {
		dates = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// --------------------------------------------------
// GET /api/nutrition/:foodId
// --------------------------------------------------
func (h *Handler) GetNutrition(c *gin.Context) {
	foodID, err := strconv.ParseInt(c.Param("foodId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	info, err := h.service.Nutrition(c.Request.Context(), foodID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// --------------------------------------------------
// PUT /api/foods/:foodId/image
// --------------------------------------------------

type updateImageRequest struct {
	ImageURL string `json:"image_url"`
}

func (h *Handler) UpdateFoodImage(c *gin.Context) {
	foodID, err := strconv.ParseInt(c.Param("foodId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.SetFoodImage(c.Request.Context(), foodID, req.ImageURL); err != nil {
		switch {
		case errors.Is(err, ErrEmptyImageURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrFoodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "image_url": req.ImageURL})
}
