package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/infrastructure/ratelimit"
)

// Limiters holds the shared per-IP limiters. Auth endpoints use the
// stricter one.
type Limiters struct {
	General *ratelimit.RateLimiter
	Auth    *ratelimit.RateLimiter
}

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiters Limiters) {
	v1 := e.Group("/v1")
	v1.Use(middleware.RateLimit(limiters.General, middleware.ScopeGeneral))

	SetupAuthRouter(v1, authMiddleware, limiters.Auth)
	SetupUserRouter(v1, authMiddleware)
	SetupProductRouter(v1, authMiddleware)
	SetupFileRouter(v1, authMiddleware)
	SetupEnquiryRouter(v1, authMiddleware)
	SetupRequirementRouter(v1, authMiddleware)
}
