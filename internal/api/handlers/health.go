package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	InstanceID string
	Version    string
}

func NewHealthHandler(instanceID, version string) *HealthHandler {
	return &HealthHandler{InstanceID: instanceID, Version: version}
}

type HealthResponse struct {
	Status     string `json:"status" example:"healthy"`
	InstanceID string `json:"instance_id" example:"wazp-1"`
}

type ServiceInfoResponse struct {
	InstanceID   string   `json:"instance_id" example:"wazp-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"0.1.0"`
	Capabilities []string `json:"capabilities"`
}

// @Summary Health check
// @Description Check if the service is healthy and responsive
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		InstanceID: h.InstanceID,
	})
}

// @Summary Service information
// @Description Get basic service information and capabilities
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} ServiceInfoResponse
// @Router / [get]
func (h *HealthHandler) ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfoResponse{
		InstanceID: h.InstanceID,
		Status:     "running",
		Version:    h.Version,
		Capabilities: []string{
			"frame_extraction",
			"roi_annotation",
			"roi_metadata_files",
		},
	})
}
