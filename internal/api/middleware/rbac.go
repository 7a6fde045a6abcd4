package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/api/metrics"
	"github.com/nskopt/catalog-api/internal/core/domain"
)

// RequireRoles is the authorization decision for a protected route.
//
// An anonymous request is an authentication failure (401), not an
// authorization one; an authenticated caller whose role is outside the
// permitted set gets 403. The two outcomes are deliberately distinct.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				metrics.AuthorizationDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if _, ok := allowed[identity.Role]; !ok {
				metrics.AuthorizationDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			return next(c)
		}
	}
}
