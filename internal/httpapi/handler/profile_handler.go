package handler

import (
	"net/http"

	"winecellar/internal/httpapi/dto"
	"winecellar/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Update)
		profile.GET("/stats", h.Stats)
	}
}

// Get returns the local user's profile with freshly computed stats
// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProfile(profile))
}

// Update applies a partial profile update
// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.profileService.Update(c.Request.Context(), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUserModel(user))
}

// Stats returns the profile counters alone
// GET /api/profile/stats
func (h *ProfileHandler) Stats(c *gin.Context) {
	stats, err := h.profileService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProfileStats(stats))
}
