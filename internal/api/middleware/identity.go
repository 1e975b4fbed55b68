package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

const identityKey = "identity"

type identityCtxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext returns the identity stored by the Auth middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return id, ok
}

// IdentityFrom returns the identity attached to the echo context.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func setIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))
}
