package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo, healthHandler *handler.HealthHandler) {
	e.GET("/health", healthHandler.CheckHealth)
	e.GET("/health/backend", healthHandler.CheckBackendHealth)
}
