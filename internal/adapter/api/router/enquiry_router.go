package router

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/adapter/api/handler"
	"b2bmarket/internal/adapter/api/middleware"
	"b2bmarket/internal/domain/entity"
)

func SetupEnquiryRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	enquiryHandler := handler.GetEnquiryHandler()
	buyer := middleware.RequireRole(entity.RoleBuyer)
	seller := middleware.RequireRole(entity.RoleSeller)

	enquiries := v1.Group("/enquiries")
	enquiries.Use(authMiddleware.Authenticate)
	enquiries.POST("", enquiryHandler.SendEnquiry, buyer)
	enquiries.GET("/received", enquiryHandler.ListReceived, seller)
	enquiries.GET("/sent", enquiryHandler.ListSent, buyer)
	enquiries.POST("/:id/respond", enquiryHandler.Respond, seller)
	enquiries.POST("/:id/close", enquiryHandler.Close, buyer)
}
