package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/ports"
)

// SeedAdmin creates the initial administrator account from configuration if
// it does not exist yet. Idempotent across restarts; a no-op when email or
// password is empty.
func SeedAdmin(ctx context.Context, accounts ports.AccountRepository, email, password string, logger zerolog.Logger) error {
	if email == "" || password == "" {
		logger.Debug().Msg("no bootstrap admin configured, skipping seed")
		return nil
	}

	exists, err := accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = accounts.Create(ctx, &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Another replica may have won the race; the account exists
		// either way.
		if errors.Is(err, domain.ErrAccountExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("email", email).Msg("bootstrap admin account created")
	return nil
}
