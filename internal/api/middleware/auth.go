package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/backoffice-erp/identity-api/internal/api/metrics"
	"github.com/backoffice-erp/identity-api/internal/core/domain"
	"github.com/backoffice-erp/identity-api/internal/core/ports"
)

// TokenHeader carries the access token on authenticated requests.
const TokenHeader = "x-auth-token"

// Auth verifies the access token and injects the caller's identity into both
// the echo context and the request context. No store lookup is made.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			setIdentity(c, id)
			return next(c)
		}
	}
}
