package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wazp-annotator/internal/config"
	"wazp-annotator/internal/logging"
	"wazp-annotator/internal/roi"
	"wazp-annotator/internal/services/framecache"
	"wazp-annotator/internal/services/metadata"
	"wazp-annotator/internal/services/session"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error" example:"session not found"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrUnknownVideo),
		errors.Is(err, metadata.ErrMetadataNotFound),
		errors.Is(err, framecache.ErrFrameExtraction):
		return http.StatusNotFound
	case errors.Is(err, metadata.ErrMissingROIs),
		errors.Is(err, metadata.ErrMalformedMetadata),
		errors.Is(err, roi.ErrMalformedShape),
		errors.Is(err, roi.ErrUnknownColor):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrInvalidFrame),
		errors.Is(err, session.ErrUnknownCategory),
		errors.Is(err, session.ErrNoProject),
		errors.Is(err, config.ErrInvalidProject),
		errors.Is(err, roi.ErrInvalidEvent),
		errors.Is(err, roi.ErrShapeIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error to its HTTP status.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error(c).Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	logging.Debug(c).Err(err).Int("status", status).Msg("Request rejected")
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
