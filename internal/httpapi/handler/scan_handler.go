package handler

import (
	"net/http"

	"winecellar/internal/httpapi/dto"
	"winecellar/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanService service.ScanService
}

func NewScanHandler(scanService service.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// RegisterRoutes registers scan workflow routes
func (h *ScanHandler) RegisterRoutes(router *gin.RouterGroup) {
	scan := router.Group("/scan")
	{
		scan.POST("", h.Scan)
		scan.POST("/lookup", h.Lookup)
		scan.GET("/history", h.History)
	}
}

// Scan runs a full simulated capture and looks the barcode up
// POST /api/scan
func (h *ScanHandler) Scan(c *gin.Context) {
	result, err := h.scanService.Scan(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromScanResult(result))
}

// Lookup resolves an explicitly supplied barcode
// POST /api/scan/lookup
func (h *ScanHandler) Lookup(c *gin.Context) {
	var req dto.LookupBarcodeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.scanService.Lookup(c.Request.Context(), c.GetString("userID"), req.Barcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromScanResult(result))
}

// History returns the user's recent scans, newest first
// GET /api/scan/history
func (h *ScanHandler) History(c *gin.Context) {
	entries, err := h.scanService.History(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
