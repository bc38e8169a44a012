package ports

import (
	"context"

	"github.com/fintrack/account-system/internal/core/domain"
)

// AccountRepository is the credential store: the single place account state
// (secret hash, role, ban flag) lives. Implementations map storage errors to
// the domain sentinels (ErrAccountNotFound, ErrAccountExists).
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, email string) error
}
