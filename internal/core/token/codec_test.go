package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fintrack/account-system/internal/core/domain"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret")

	raw, err := c.Issue(KindAccess, "alice@example.com", domain.RoleModerator, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleModerator {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.Kind != KindAccess {
		t.Fatalf("unexpected kind: %s", claims.Kind)
	}
	if claims.TokenID == "" {
		t.Fatalf("expected token id")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issuance %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestCodec_RefreshTokenCarriesNoRole(t *testing.T) {
	c := NewCodec("secret")

	raw, err := c.Issue(KindRefresh, "alice@example.com", domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := c.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Kind != KindRefresh {
		t.Fatalf("unexpected kind: %s", claims.Kind)
	}
	if claims.Role != "" {
		t.Fatalf("refresh token must not carry a role, got %q", claims.Role)
	}
}

func TestCodec_Expired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCodec("secret").WithClock(func() time.Time { return issued })

	raw, err := c.Issue(KindAccess, "alice@example.com", domain.RoleUser, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid one second before expiry.
	c.WithClock(func() time.Time { return issued.Add(59 * time.Second) })
	if _, err := c.Verify(raw); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}

	c.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })
	if _, err := c.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	c := NewCodec("secret")

	raw, err := c.Issue(KindAccess, "alice@example.com", domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip the last byte of the signature segment.
	last := raw[len(raw)-1]
	flipped := byte('A')
	if last == flipped {
		flipped = 'B'
	}
	tampered := raw[:len(raw)-1] + string(flipped)

	claims, err := c.Verify(tampered)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
	if claims != nil {
		t.Fatalf("tampered token must not yield claims")
	}
}

func TestCodec_WrongKey(t *testing.T) {
	raw, err := NewCodec("secret-a").Issue(KindAccess, "alice@example.com", domain.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("secret-b").Verify(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := NewCodec("secret")

	for _, raw := range []string{"", "not-a-token", "a.b", strings.Repeat("x", 64)} {
		if _, err := c.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestCodec_AccessTokenWithoutRoleRejected(t *testing.T) {
	c := NewCodec("secret")

	raw, err := c.Issue(KindAccess, "alice@example.com", "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := c.Verify(raw); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for roleless access token, got %v", err)
	}
}
