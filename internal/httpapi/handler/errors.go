package handler

import (
	"errors"
	"net/http"

	"winecellar/internal/capture"
	"winecellar/internal/httpapi/repository"
	"winecellar/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service and repository failures to HTTP responses.
// Validation problems come back per-field so the client can render them
// inline; everything else is a single user-facing message.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}

	var cerr *capture.Error
	if errors.As(err, &cerr) {
		status := http.StatusInternalServerError
		switch cerr.Cause {
		case capture.CausePermissionDenied:
			status = http.StatusForbidden
		case capture.CauseDeviceBusy:
			status = http.StatusConflict
		case capture.CauseUnsupported:
			status = http.StatusNotImplemented
		case capture.CauseClosed:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":       cerr.Error(),
			"cause":       string(cerr.Cause),
			"remediation": cerr.Remediation(),
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrBlankBarcode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barcode detected, please try again"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
