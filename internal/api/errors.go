package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/plateful-backend/internal/service"
)

// handleServiceError maps service sentinels onto HTTP statuses. Cross-owner
// access surfaces as not found, never forbidden.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": service.ErrEmailTaken.Error()}})
	case errors.Is(err, service.ErrNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": service.ErrNameTaken.Error()}})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": service.ErrNotAnImage.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
