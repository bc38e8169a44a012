package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fintrack/account-system/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, resp.Error
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{domain.ErrAccessDenied, http.StatusForbidden, "access forbidden"},
		{domain.ErrAccountBanned, http.StatusForbidden, "account banned"},
		{domain.ErrAccountNotFound, http.StatusNotFound, "account not found"},
		{domain.ErrAccountExists, http.StatusConflict, "account already exists"},
		{domain.ErrSelfAction, http.StatusUnprocessableEntity, domain.ErrSelfAction.Error()},
	}
	for _, tc := range cases {
		code, msg := render(t, tc.err)
		if code != tc.code || msg != tc.msg {
			t.Fatalf("%v: got (%d, %q), want (%d, %q)", tc.err, code, msg, tc.code, tc.msg)
		}
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrAccessDenied)
	code, msg := render(t, wrapped)
	if code != http.StatusForbidden || msg != "access forbidden" {
		t.Fatalf("wrapped error not mapped: (%d, %q)", code, msg)
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	code, msg := render(t, errors.New("pq: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := render(t, echo.NewHTTPError(http.StatusUnauthorized, "authentication required"))
	if code != http.StatusUnauthorized || msg != "authentication required" {
		t.Fatalf("echo error not passed through: (%d, %q)", code, msg)
	}
}
