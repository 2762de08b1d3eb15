package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"b2bmarket/internal/usecase"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/response"
)

const sessionKey = "session"

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// bearerToken reads "Authorization: Bearer <token>", falling back to the
// token query parameter that browsers must use for WebSocket upgrades.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}

// Authenticate verifies the ID token and stores the Session in the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		session, err := m.authUseCase.Authenticate(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(sessionKey, session)
		return next(c)
	}
}

// SessionFrom returns the Session set by Authenticate, or nil.
func SessionFrom(c echo.Context) *usecase.Session {
	s, _ := c.Get(sessionKey).(*usecase.Session)
	return s
}
