package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/ports"
	"github.com/fintrack/account-system/internal/core/token"
)

// dummyHash is compared against when the identity is unknown, so that a
// failed login costs the same whether the account exists or not.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fintrack-dummy-credential"), bcrypt.DefaultCost)

// AuthService implements registration, login, token refresh and password
// change. It holds no session state: everything a request needs lives in the
// tokens it hands out.
type AuthService struct {
	accounts   ports.AccountRepository
	audit      ports.AuditRepository
	denylist   ports.TokenDenylist
	tx         ports.TxRunner
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	audit ports.AuditRepository,
	denylist ports.TokenDenylist,
	tx ports.TxRunner,
	codec *token.Codec,
	accessTTL, refreshTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		accounts:   accounts,
		audit:      audit,
		denylist:   denylist,
		tx:         tx,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Register creates a new account with the base role. The email becomes the
// account's immutable identity.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", created.Email).Msg("account registered")
	return created, nil
}

// Login verifies the submitted credentials and issues a fresh token pair.
// Unknown identity and wrong secret produce the identical error, and both
// paths pay for a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issuePair(account)
}

// Refresh redeems a refresh token for a new pair. The live account is
// re-checked: a ban or deletion that happened after issuance takes effect
// here, without waiting for the token to expire. On success the old refresh
// token is revoked for the remainder of its lifetime.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	if claims.Kind != token.KindRefresh {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}

	account, err := s.accounts.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if account.Banned {
		return nil, domain.ErrAccountBanned
	}

	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("email", account.Email).Msg("refresh token rotated")
	return s.issuePair(account)
}

// ChangePassword updates the caller's own secret after re-verifying the
// current one. The change is audited with the caller as both actor and
// target.
func (s *AuthService) ChangePassword(ctx context.Context, email, current, next string) error {
	if next == "" {
		return domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)
	account.UpdatedAt = time.Now().UTC()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.accounts.Update(ctx, account); err != nil {
			return err
		}
		return s.audit.Insert(ctx, &domain.AuditRecord{
			Action:    domain.AuditChangePassword,
			Actor:     email,
			Target:    email,
			Timestamp: time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("password changed")
	return nil
}

func (s *AuthService) issuePair(account *domain.Account) (*ports.TokenPair, error) {
	access, err := s.codec.Issue(token.KindAccess, account.Email, account.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Issue(token.KindRefresh, account.Email, "", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
