package handler

import (
	"net/http"

	"winecellar/internal/httpapi/dto"
	"winecellar/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	collectionService service.CollectionService
}

func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// RegisterRoutes registers the collection view route
func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/collection", h.View)
}

// View returns the filtered collection plus whole-collection stats
// GET /api/collection?q=...&type=red&rating=4&favorites=true
func (h *CollectionHandler) View(c *gin.Context) {
	var query dto.CollectionQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	view, err := h.collectionService.View(c.Request.Context(), query.ToFilters())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCollectionView(view))
}
