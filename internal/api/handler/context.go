package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/backoffice-erp/identity-api/internal/api/middleware"
	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// ctxIdentity returns the caller identity injected by the Auth middleware.
// A missing identity means the route was mounted without Auth.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
