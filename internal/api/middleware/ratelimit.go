package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/backoffice-erp/identity-api/internal/api/metrics"
)

// Limiter decides whether one more hit for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
}

// RateLimit throttles requests per client IP. When the limiter itself fails
// the request is let through and the failure is logged.
func RateLimit(scope string, limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, remaining, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Str("ip", ip).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return next(c)
		}
	}
}
