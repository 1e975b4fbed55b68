package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/backoffice-erp/identity-api/internal/api/metrics"
	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// RequireRole admits only callers whose token role is one of roles. It must
// run after Auth; a request without an identity is treated as unauthenticated.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	denied := echo.NewHTTPError(http.StatusForbidden, deniedMessage(roles)).SetInternal(domain.ErrForbidden)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[id.Role]; !ok {
				metrics.AccessDeniedTotal.Inc()
				return denied
			}
			return next(c)
		}
	}
}

// deniedMessage renders e.g. "Access denied: Admins only".
func deniedMessage(roles []domain.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		s := string(r)
		if s == "" {
			continue
		}
		names = append(names, strings.ToUpper(s[:1])+s[1:]+"s")
	}
	if len(names) == 0 {
		return "Access denied"
	}
	return "Access denied: " + strings.Join(names, " or ") + " only"
}
