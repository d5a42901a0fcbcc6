package handler

import (
	"net/http"
	"strconv"

	"winecellar/internal/httpapi/dto"
	"winecellar/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	rating := router.Group("/wines/:wine_id/rating")
	{
		rating.GET("", h.Get)
		rating.POST("", h.Submit)
		rating.DELETE("", h.Delete)
	}
	router.POST("/wines/:wine_id/favorite", h.ToggleFavorite)
	router.GET("/ratings/recent", h.Recent)
	router.GET("/ratings/favorites", h.Favorites)
}

func wineIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("wine_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wine ID"})
		return 0, false
	}
	return id, true
}

// Get returns the user's rating for a wine, or 204 when none exists yet
// GET /api/wines/:wine_id/rating
func (h *RatingHandler) Get(c *gin.Context) {
	wineID, ok := wineIDParam(c)
	if !ok {
		return
	}
	rating, err := h.ratingService.GetForWine(c.Request.Context(), wineID)
	if err != nil {
		respondError(c, err)
		return
	}
	if rating == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatingModel(rating))
}

// Submit creates or updates the user's rating
// POST /api/wines/:wine_id/rating
func (h *RatingHandler) Submit(c *gin.Context) {
	wineID, ok := wineIDParam(c)
	if !ok {
		return
	}
	var req dto.SubmitRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rating, err := h.ratingService.CreateOrUpdate(c.Request.Context(), wineID, req.Rating, req.Notes, req.IsFavorite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatingModel(rating))
}

// Delete removes the user's rating, dropping the wine from the collection
// DELETE /api/wines/:wine_id/rating
func (h *RatingHandler) Delete(c *gin.Context) {
	wineID, ok := wineIDParam(c)
	if !ok {
		return
	}
	rating, err := h.ratingService.Delete(c.Request.Context(), wineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatingModel(rating))
}

// ToggleFavorite flips the favorite flag, creating an unscored rating if
// none exists
// POST /api/wines/:wine_id/favorite
func (h *RatingHandler) ToggleFavorite(c *gin.Context) {
	wineID, ok := wineIDParam(c)
	if !ok {
		return
	}
	rating, err := h.ratingService.ToggleFavorite(c.Request.Context(), wineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatingModel(rating))
}

// Recent returns the most recently rated wines
// GET /api/ratings/recent?limit=10
func (h *RatingHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	ratings, err := h.ratingService.GetRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatingModels(ratings))
}

// Favorites returns every rating flagged as favorite
// GET /api/ratings/favorites
func (h *RatingHandler) Favorites(c *gin.Context) {
	ratings, err := h.ratingService.GetFavorites(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRatingModels(ratings))
}
