package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", domain.NewValidationError("", "email", "password"), http.StatusBadRequest, `{"msg":"missing or invalid fields: email, password"}`},
		{"conflict", fmt.Errorf("register: %w", domain.ErrUserExists), http.StatusBadRequest, `{"msg":"User already exists"}`},
		{"credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, `{"msg":"Invalid credentials"}`},
		{"no token", domain.ErrUnauthenticated, http.StatusUnauthorized, `{"msg":"No token, authorization denied"}`},
		{"bad token", domain.ErrInvalidToken, http.StatusUnauthorized, `{"msg":"Token is not valid"}`},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, `{"msg":"User not found"}`},
		{"http error", echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests"), http.StatusTooManyRequests, `{"msg":"Too many requests"}`},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, `{"msg":"Server error"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != tc.body {
				t.Fatalf("expected body %s, got %s", tc.body, got)
			}
		})
	}
}

func TestHTTPErrorHandler_LogsUnexpectedWithoutLeaking(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), rec)

	NewHTTPErrorHandler(log)(errors.New("dial tcp 10.0.0.5:27017: refused"), c)

	if bytes.Contains(rec.Body.Bytes(), []byte("10.0.0.5")) {
		t.Fatalf("internal detail leaked to client: %s", rec.Body.String())
	}
	if !bytes.Contains(logs.Bytes(), []byte("10.0.0.5")) {
		t.Fatalf("expected cause to be logged, got %s", logs.String())
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUserNotFound, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten, got %d %q", rec.Code, rec.Body.String())
	}
}
