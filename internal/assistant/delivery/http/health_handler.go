package http

import (
	"net/http"
	"time"

	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/pkg/utils"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness.
type HealthHandler struct {
	service string
	version string
}

func NewHealthHandler(service, version string) *HealthHandler {
	return &HealthHandler{service: service, version: version}
}

// RegisterRoutes registers the health route on the root of the server.
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: h.service,
		Version: h.version,
		Time:    utils.TimeNowWIB().Format(time.RFC3339),
	})
}
