package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/core/domain"
)

type stubAuthService struct {
	registerErr error
	loginToken  string
	loginErr    error

	registeredUser string
	loginUser      string
}

func (s *stubAuthService) Register(_ context.Context, username, _ string) error {
	s.registeredUser = username
	return s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (string, error) {
	s.loginUser = username
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

func newAuthContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Created(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/register", `{"username":"alice","password":"correct-horse"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if stub.registeredUser != "alice" {
		t.Fatalf("service saw username %q", stub.registeredUser)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, "/api/auth/register", `{"username":"alice","password":"correct-horse"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	cases := map[string]string{
		"missing username": `{"password":"correct-horse"}`,
		"short username":   `{"username":"ab","password":"correct-horse"}`,
		"short password":   `{"username":"alice","password":"short"}`,
		"not json":         `{{{`,
	}

	for name, body := range cases {
		stub := &stubAuthService{}
		h := NewAuthHandler(stub)

		c, _ := newAuthContext(t, "/api/auth/register", body)
		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", name, err)
		}
		if stub.registeredUser != "" {
			t.Fatalf("%s: service called for invalid payload", name)
		}
	}
}

func TestAuthHandler_Login_ReturnsToken(t *testing.T) {
	stub := &stubAuthService{loginToken: "signed-token"}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/api/auth/login", `{"username":"alice","password":"correct-horse"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AccessToken != "signed-token" {
		t.Fatalf("accessToken = %q", resp.AccessToken)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
