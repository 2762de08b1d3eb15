package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/entity"
)

func SetupUserRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	v1.GET("/users/:id", userHandler.GetProfile)

	me := v1.Group("/users/me")
	me.Use(authMiddleware.Authenticate)
	me.Use(middleware.RequireRole(entity.RoleSeller))
	me.PUT("/seller-status", userHandler.UpdateSellerStatus)
}
