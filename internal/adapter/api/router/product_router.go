package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/entity"
)

func SetupProductRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := v1.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/categories", productHandler.Categories)
	products.GET("/:id", productHandler.GetProduct)

	myProducts := v1.Group("/my-products")
	myProducts.Use(authMiddleware.Authenticate)
	myProducts.Use(middleware.RequireRole(entity.RoleSeller))
	myProducts.GET("", productHandler.ListMyProducts)
	myProducts.POST("", productHandler.CreateProduct)
	myProducts.PUT("/:id", productHandler.UpdateProduct)
	myProducts.DELETE("/:id", productHandler.DeleteProduct)
}
