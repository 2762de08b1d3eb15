package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"b2bmarket/internal/adapter/repository/memory"
	"b2bmarket/internal/domain/entity"
	"b2bmarket/internal/domain/rules"
	"b2bmarket/internal/infrastructure/ratelimit"
	"b2bmarket/internal/usecase"
)

func newAuth(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()
	store := memory.NewStore()
	auth := usecase.NewAuthUseCase(store.Users(), memory.NewFastIdentityProvider(), usecase.NewSessionHub(), usecase.NewInFlight())

	res, err := auth.Register(context.Background(), rules.RegistrationInput{
		Email:    "buyer@example.com",
		Password: "secret1",
		Name:     "Bina",
		Role:     entity.RoleBuyer,
	})
	require.NoError(t, err)
	return NewAuthMiddleware(auth), res.Token
}

func serve(e *echo.Echo, target, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	m, token := newAuth(t)

	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, SessionFrom(c).Profile.Name)
	}, m.Authenticate)

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"bearer header", "/whoami", "Bearer " + token, http.StatusOK},
		{"query token", "/whoami?token=" + token, "", http.StatusOK},
		{"missing", "/whoami", "", http.StatusUnauthorized},
		{"wrong scheme", "/whoami", "Basic " + token, http.StatusUnauthorized},
		{"unknown token", "/whoami", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.target, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "Bina", rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	m, token := newAuth(t)

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/buyers", ok, m.Authenticate, RequireRole(entity.RoleBuyer))
	e.GET("/sellers", ok, m.Authenticate, RequireRole(entity.RoleSeller))
	e.GET("/anonymous", ok, RequireRole(entity.RoleBuyer))

	assert.Equal(t, http.StatusNoContent, serve(e, "/buyers", "Bearer "+token).Code)
	assert.Equal(t, http.StatusForbidden, serve(e, "/sellers", "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "/anonymous", "").Code)
}

func TestRateLimitSetsRetryAfter(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimit(ratelimit.NewRateLimiter(0.5, 1), ScopeGeneral))

	assert.Equal(t, http.StatusNoContent, serve(e, "/", "").Code)

	rec := serve(e, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
}
