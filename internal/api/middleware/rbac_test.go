package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

func TestRequireRoles_Anonymous_Unauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("handler reached by anonymous request")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	// Missing identity is an authentication problem, never a 403.
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}

func TestRequireRoles_WrongRole_Forbidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetIdentity(c, domain.Identity{Username: "bob", Role: domain.RoleUser})

	handler := RequireRoles(domain.RoleManager, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("handler reached by unprivileged caller")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRequireRoles_AllowedRole(t *testing.T) {
	cases := []struct {
		role    domain.Role
		allowed []domain.Role
	}{
		{domain.RoleAdmin, []domain.Role{domain.RoleAdmin}},
		{domain.RoleManager, []domain.Role{domain.RoleManager, domain.RoleAdmin}},
		{domain.RoleAdmin, []domain.Role{domain.RoleManager, domain.RoleAdmin}},
	}

	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		SetIdentity(c, domain.Identity{Username: "carol", Role: tc.role})

		called := false
		handler := RequireRoles(tc.allowed...)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("role %s against %v: %v", tc.role, tc.allowed, err)
		}
		if !called {
			t.Fatalf("role %s against %v: handler not called", tc.role, tc.allowed)
		}
	}
}
