package middleware

import (
	"github.com/labstack/echo/v4"

	"b2bmarket/internal/domain/entity"
	"b2bmarket/pkg/response"
)

// RequireRole must run after Authenticate. Use cases check the role again;
// this only fails fast for whole route groups.
func RequireRole(role entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := SessionFrom(c).RequireRole(role); err != nil {
				return response.Error(c, err)
			}
			return next(c)
		}
	}
}
