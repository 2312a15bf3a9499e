package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ollama-proxy-go/internal/config"
)

// ServiceName identifies the proxy in health responses.
const ServiceName = "Ollama Proxy"

// Version is a string type for dependency injection of the build version.
type Version string

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthHandler serves health and status endpoints. Neither touches the upstream.
type HealthHandler struct {
	cfg     *config.Config
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, v Version) *HealthHandler {
	return &HealthHandler{cfg: cfg, version: v}
}

// Health reports that the proxy itself is up.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: ServiceName,
	})
}

// Status returns proxy status information.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":       "ok",
		"service":      ServiceName,
		"version":      string(h.version),
		"upstream_url": h.cfg.Upstream.BaseURL,
	})
}
