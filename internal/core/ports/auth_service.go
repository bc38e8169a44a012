package ports

import (
	"context"

	"github.com/fintrack/account-system/internal/core/domain"
)

// TokenPair is what login and refresh hand back: a short-lived access token
// and the refresh token that can mint the next pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, email, current, next string) error
}
