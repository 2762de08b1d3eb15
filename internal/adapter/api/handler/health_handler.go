package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
)

// HealthHandler reports liveness and, separately, whether the backing
// document store answers.
type HealthHandler struct {
	backend string
	ping    func(ctx context.Context) error
}

func NewHealthHandler(backend string, ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		ping:    ping,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend,
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) CheckBackendHealth(c echo.Context) error {
	if h.ping == nil {
		return h.CheckHealth(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logger.RemoteFailure("health check", h.backend, err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"backend": h.backend,
			"error":   errors.RemoteFailureMessage,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.backend,
	})
}
