package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/account-system/internal/core/domain"
)

func runRequireRole(t *testing.T, min domain.Role, id *domain.Identity) (int, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(identityKey, *id)
	}

	mw := RequireRole(min)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec.Code, err
}

func TestRequireRole_AnonymousRejected(t *testing.T) {
	_, err := runRequireRole(t, domain.RoleUser, nil)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireRole_Hierarchy(t *testing.T) {
	cases := []struct {
		role    domain.Role
		min     domain.Role
		allowed bool
	}{
		{domain.RoleUser, domain.RoleUser, true},
		{domain.RoleUser, domain.RoleModerator, false},
		{domain.RoleModerator, domain.RoleUser, true},
		{domain.RoleModerator, domain.RoleModerator, true},
		{domain.RoleModerator, domain.RoleAdmin, false},
		{domain.RoleAdmin, domain.RoleUser, true},
		{domain.RoleAdmin, domain.RoleModerator, true},
		{domain.RoleAdmin, domain.RoleAdmin, true},
	}

	for _, tc := range cases {
		id := domain.Identity{Subject: "x@example.com", Role: tc.role}
		code, err := runRequireRole(t, tc.min, &id)
		if tc.allowed {
			if err != nil || code != http.StatusOK {
				t.Fatalf("%s against %s: expected allow, got code=%d err=%v", tc.role, tc.min, code, err)
			}
		} else if !errors.Is(err, domain.ErrAccessDenied) {
			t.Fatalf("%s against %s: expected ErrAccessDenied, got %v", tc.role, tc.min, err)
		}
	}
}

func TestRequireRole_UnknownRoleDenied(t *testing.T) {
	id := domain.Identity{Subject: "x@example.com", Role: domain.Role("bogus")}
	if _, err := runRequireRole(t, domain.RoleUser, &id); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for unknown role, got %v", err)
	}
}
