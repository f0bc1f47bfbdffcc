package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "rental-backend"

type Handler struct{ service string }

func NewHandler() *Handler { return &Handler{service: ServiceName} }

// Health reports liveness only; it does not touch MySQL or Redis.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": h.service,
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
