// Package token implements the signed-token codec: issuance and verification
// of access and refresh tokens. Tokens are HS256 JWTs and carry everything a
// request needs to reconstruct its identity; nothing is persisted server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fintrack/account-system/internal/core/domain"
)

// Kind distinguishes the two token flavours the codec mints.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Verification failures. Verify never returns a partially parsed result
// alongside one of these.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Claims is the verified content of a token. Role is set only on access
// tokens; refresh tokens identify the subject and nothing more.
type Claims struct {
	Kind      Kind
	Subject   string
	Role      domain.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	Kind Kind        `json:"kind"`
	Role domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens under a single symmetric signing key.
// The zero value is unusable; construct with NewCodec.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the codec's clock. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue mints a signed token of the given kind for subject, valid for ttl.
// The role claim is carried on access tokens only.
func (c *Codec) Issue(kind Kind, subject string, role domain.Role, ttl time.Duration) (string, error) {
	now := c.now().UTC()
	claims := jwtClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if kind == KindAccess {
		claims.Role = role
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates raw, returning its claims or exactly one of
// ErrMalformed, ErrSignatureInvalid, ErrExpired.
func (c *Codec) Verify(raw string) (*Claims, error) {
	var claims jwtClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	switch {
	case err == nil && tkn.Valid:
		// fall through to claim extraction
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrSignatureInvalid
	default:
		return nil, ErrMalformed
	}

	if claims.Subject == "" || (claims.Kind != KindAccess && claims.Kind != KindRefresh) {
		return nil, ErrMalformed
	}
	if claims.Kind == KindAccess && !claims.Role.Valid() {
		return nil, ErrMalformed
	}

	out := &Claims{
		Kind:    claims.Kind,
		Subject: claims.Subject,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
