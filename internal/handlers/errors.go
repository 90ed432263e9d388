package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/middleware"
	"portfolio/internal/security"
	"portfolio/internal/service"
)

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{security.ErrTokenInvalid, http.StatusUnauthorized, "invalid_token"},
	{service.ErrAccountExists, http.StatusConflict, "account_exists"},
	{service.ErrRegistrationDisabled, http.StatusForbidden, "registration_disabled"},
	{service.ErrNotFound, http.StatusNotFound, "not_found"},
	{service.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{service.ErrUnsupportedImage, http.StatusUnsupportedMediaType, "unsupported_image"},
	{service.ErrImageTooLarge, http.StatusRequestEntityTooLarge, "image_too_large"},
}

func (h HandlerSet) respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.code})
			return
		}
	}

	h.log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("request_id", middleware.RequestIDFrom(c)).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
}
