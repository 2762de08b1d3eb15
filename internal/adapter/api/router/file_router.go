package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/entity"
)

func SetupFileRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	images := v1.Group("/my-products/:id/image")
	images.Use(authMiddleware.Authenticate)
	images.Use(middleware.RequireRole(entity.RoleSeller))
	images.POST("", fileHandler.UploadProductImage)
}
