package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fintrack/account-system/internal/api/metrics"
	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/token"
)

// identityKey is the echo context key the resolved identity is stored under.
const identityKey = "auth.identity"

// Identity reconstructs the request identity from the Authorization header.
// A missing, malformed, expired or otherwise invalid token never fails the
// request: it only leaves it anonymous, and the role guard decides what an
// anonymous request may do. Invalid tokens are logged at warning level.
func Identity(codec *token.Codec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn().Str("path", c.Path()).Msg("malformed authorization header")
				metrics.TokenVerificationsTotal.WithLabelValues("malformed").Inc()
				return next(c)
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				log.Warn().Err(err).Str("path", c.Path()).Msg("token verification failed")
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return next(c)
			}
			if claims.Kind != token.KindAccess {
				log.Warn().Str("path", c.Path()).Str("kind", string(claims.Kind)).Msg("non-access token presented as bearer")
				metrics.TokenVerificationsTotal.WithLabelValues("wrong_kind").Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(identityKey, domain.Identity{Subject: claims.Subject, Role: claims.Role})
			return next(c)
		}
	}
}

// IdentityFrom returns the resolved identity for the request, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// SetIdentity stores id as the request identity, bypassing token
// verification. Intended for use in tests only.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "signature_invalid"
	default:
		return "malformed"
	}
}
