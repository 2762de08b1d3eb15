package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/entity"
)

func SetupRequirementRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	requirementHandler := handler.GetRequirementHandler()
	buyer := middleware.RequireRole(entity.RoleBuyer)
	seller := middleware.RequireRole(entity.RoleSeller)

	requirements := v1.Group("/requirements")
	requirements.Use(authMiddleware.Authenticate)
	requirements.GET("", requirementHandler.ListRequirements)
	requirements.GET("/mine", requirementHandler.ListMine, buyer)
	requirements.POST("", requirementHandler.PostRequirement, buyer)
	requirements.DELETE("/:id", requirementHandler.DeleteRequirement, buyer)
	requirements.POST("/:id/interest", requirementHandler.ShowInterest, seller)
}
