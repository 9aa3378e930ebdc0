// internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// respondError maps domain error kinds onto HTTP responses. Every user-facing
// failure renders as an inline JSON message; nothing propagates as a blank
// page.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
		return
	}

	var uploadErr *domain.UploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": uploadErr.Error()})
		return
	}

	var connErr *domain.ConnectionError
	if errors.As(err, &connErr) {
		log.Error().Err(err).Msg("database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unreachable, please retry"})
		return
	}

	log.Error().Err(err).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
