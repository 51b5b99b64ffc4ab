package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"compcontrol/internal/handlers/business"
)

// respondBusinessError maps domain errors onto HTTP status codes
func respondBusinessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, business.ErrSlotOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrPlacementDenied):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrDependencyUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
