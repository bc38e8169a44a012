package ports

import (
	"context"
	"time"
)

// TokenDenylist revokes refresh tokens by their token ID before their natural
// expiry. Only the refresh path consults it; access-token verification stays
// stateless.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
