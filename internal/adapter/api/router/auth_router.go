package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	public := v1.Group("/auth")
	public.POST("/register", authHandler.Register, middleware.RateLimit(limiter, middleware.ScopeAuth))
	public.POST("/login", authHandler.Login, middleware.RateLimit(limiter, middleware.ScopeAuth))

	protected := v1.Group("/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
}
