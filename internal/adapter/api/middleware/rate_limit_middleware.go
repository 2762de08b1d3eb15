package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"b2bmarket/internal/infrastructure/ratelimit"
	"b2bmarket/pkg/errors"
	"b2bmarket/pkg/logger"
	"b2bmarket/pkg/response"
)

// RateLimit limits requests per client IP. Auth endpoints get their own,
// stricter limiter.
func RateLimit(limiter *ratelimit.RateLimiter, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, wait := limiter.Allow(scope + ":" + ip)
			if ok {
				return next(c)
			}

			logger.Warn("RATE LIMIT: %s request from %s refused, retry in %v", scope, ip, wait)
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))

			if scope == ScopeAuth {
				return response.Error(c, errors.AuthRateLimited(nil))
			}
			return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
		}
	}
}

const (
	ScopeGeneral = "general"
	ScopeAuth    = "auth"
)
