package ports

import (
	"context"

	"github.com/fintrack/account-system/internal/core/domain"
)

// ModerationService performs privileged mutations on other accounts. Every
// method takes the acting identity, enforces the self-action and role-scope
// guards, and writes exactly one audit record per successful state change.
type ModerationService interface {
	Ban(ctx context.Context, actor domain.Identity, email string) (*domain.Account, error)
	Unban(ctx context.Context, actor domain.Identity, email string) (*domain.Account, error)
	ChangeRole(ctx context.Context, actor domain.Identity, email string, role domain.Role) (*domain.Account, error)
	Create(ctx context.Context, actor domain.Identity, email, password string, role domain.Role) (*domain.Account, error)
	Delete(ctx context.Context, actor domain.Identity, email string) error
}
