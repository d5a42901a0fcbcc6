package handler

import (
	"net/http"
	"strconv"

	"winecellar/internal/httpapi/dto"
	"winecellar/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type WineHandler struct {
	wineService service.WineService
}

func NewWineHandler(wineService service.WineService) *WineHandler {
	return &WineHandler{wineService: wineService}
}

// RegisterRoutes registers wine catalogue routes
func (h *WineHandler) RegisterRoutes(router *gin.RouterGroup) {
	wines := router.Group("/wines")
	{
		wines.GET("", h.List)
		wines.GET("/search", h.Search)
		wines.GET("/barcode/:code", h.GetByBarcode)
		wines.GET("/:wine_id", h.Get)
		wines.POST("", h.Create)
		wines.PUT("/:wine_id", h.Update)
		wines.DELETE("/:wine_id", h.Delete)
	}
}

// List returns the whole catalogue
// GET /api/wines
func (h *WineHandler) List(c *gin.Context) {
	wines, err := h.wineService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWineModels(wines))
}

// Get returns a single wine
// GET /api/wines/:wine_id
func (h *WineHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("wine_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wine ID"})
		return
	}
	wine, err := h.wineService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWineModel(*wine))
}

// GetByBarcode returns the wine carrying exactly the given barcode
// GET /api/wines/barcode/:code
func (h *WineHandler) GetByBarcode(c *gin.Context) {
	wine, err := h.wineService.GetByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWineModel(*wine))
}

// Create catalogues a new wine, optionally with an initial rating
// POST /api/wines
func (h *WineHandler) Create(c *gin.Context) {
	var req dto.CreateWineDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input := req.ToInput()
	if username := c.GetString("username"); username != "" {
		input.AddedBy = username
	}
	wine, err := h.wineService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromWineModel(*wine))
}

// Update applies a partial update
// PUT /api/wines/:wine_id
func (h *WineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("wine_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wine ID"})
		return
	}
	var req dto.UpdateWineDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	wine, err := h.wineService.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWineModel(*wine))
}

// Delete removes a wine and returns the removed record
// DELETE /api/wines/:wine_id
func (h *WineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("wine_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wine ID"})
		return
	}
	wine, err := h.wineService.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWineModel(*wine))
}

// Search performs a free-text catalogue search
// GET /api/wines/search?q=...
func (h *WineHandler) Search(c *gin.Context) {
	wines, err := h.wineService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromWineModels(wines))
}
