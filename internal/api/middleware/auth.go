package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/api/metrics"
	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// identityKey is the echo context key the authenticated identity is stored
// under for the remainder of request processing.
const identityKey = "identity"

// genericAuthMessage is the only detail a client ever sees about a rejected
// credential. Which validation check failed stays internal.
const genericAuthMessage = "invalid or expired token"

// Auth is the per-request authentication filter.
//
// No Authorization header means the request continues anonymously; only a
// later role check may reject it. A present bearer token is validated, and
// any failure short-circuits with a generic 401 before the handler runs.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, genericAuthMessage)
			}

			identity, err := tokens.Validate(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, genericAuthMessage)
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity attaches the identity to the request context. Exported for
// handler tests that bypass the filter.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the request identity, if the auth filter attached one.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

// rejectionReason labels token failures for metrics only; it never reaches
// the wire.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired"
	case errors.Is(err, domain.ErrUnknownSubject):
		return "unknown_subject"
	default:
		return "error"
	}
}
