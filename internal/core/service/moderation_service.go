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

// ModerationService carries out privileged mutations against other accounts.
// Each operation re-resolves the actor's live account (token claims can be
// stale), applies the self-action and role-scope guards, and commits the
// mutation together with its audit record in one transaction.
//
// A mutation that would not change anything (banning an already banned
// account, assigning the role an account already holds) returns the account
// unchanged and writes no audit record, so the trail only contains real
// transitions.
type ModerationService struct {
	accounts ports.AccountRepository
	audit    ports.AuditRepository
	tx       ports.TxRunner
	logger   zerolog.Logger
}

func NewModerationService(
	accounts ports.AccountRepository,
	audit ports.AuditRepository,
	tx ports.TxRunner,
	logger zerolog.Logger,
) *ModerationService {
	return &ModerationService{accounts: accounts, audit: audit, tx: tx, logger: logger}
}

// Ban moves the target into the banned state. Requires moderator scope over
// the target's tier.
func (s *ModerationService) Ban(ctx context.Context, actor domain.Identity, email string) (*domain.Account, error) {
	actorAcct, target, err := s.guard(ctx, actor, email, domain.RoleModerator)
	if err != nil {
		return nil, err
	}
	if target.Banned {
		return target, nil
	}

	target.Banned = true
	return s.commit(ctx, actorAcct, target, domain.AuditBan)
}

// Unban moves the target back into the active state.
func (s *ModerationService) Unban(ctx context.Context, actor domain.Identity, email string) (*domain.Account, error) {
	actorAcct, target, err := s.guard(ctx, actor, email, domain.RoleModerator)
	if err != nil {
		return nil, err
	}
	if !target.Banned {
		return target, nil
	}

	target.Banned = false
	return s.commit(ctx, actorAcct, target, domain.AuditUnban)
}

// ChangeRole assigns a new role to the target, audited as PROMOTE or DEMOTE
// depending on direction. Admin only.
func (s *ModerationService) ChangeRole(ctx context.Context, actor domain.Identity, email string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() {
		return nil, domain.ErrAccessDenied
	}

	actorAcct, target, err := s.guard(ctx, actor, email, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if target.Role == role {
		return target, nil
	}

	action := domain.AuditDemote
	if role.AtLeast(target.Role) {
		action = domain.AuditPromote
	}
	target.Role = role
	return s.commit(ctx, actorAcct, target, action)
}

// Create provisions an account with an explicit role, typically a new
// moderator or administrator. Admin only.
func (s *ModerationService) Create(ctx context.Context, actor domain.Identity, email, password string, role domain.Role) (*domain.Account, error) {
	if !role.Valid() || email == "" || password == "" {
		return nil, domain.ErrAccessDenied
	}

	actorAcct, err := s.resolveActor(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !actorAcct.Role.AtLeast(domain.RoleAdmin) {
		return nil, domain.ErrAccessDenied
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *domain.Account
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.accounts.Create(ctx, account)
		if txErr != nil {
			return txErr
		}
		return s.audit.Insert(ctx, &domain.AuditRecord{
			Action:    domain.AuditCreate,
			Actor:     actorAcct.Email,
			Target:    created.Email,
			Timestamp: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("actor", actorAcct.Email).Str("target", created.Email).Str("role", string(role)).Msg("account created")
	return created, nil
}

// Delete removes the target account. Admin only; never the actor's own.
func (s *ModerationService) Delete(ctx context.Context, actor domain.Identity, email string) error {
	actorAcct, target, err := s.guard(ctx, actor, email, domain.RoleAdmin)
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.accounts.Delete(ctx, target.Email); err != nil {
			return err
		}
		return s.audit.Insert(ctx, &domain.AuditRecord{
			Action:    domain.AuditDelete,
			Actor:     actorAcct.Email,
			Target:    target.Email,
			Timestamp: time.Now().UTC(),
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("actor", actorAcct.Email).Str("target", target.Email).Msg("account deleted")
	return nil
}

// guard enforces, in order: the self-action rule, the actor's minimum tier,
// and the actor's scope over the target's tier. Non-admin actors get
// ErrAccessDenied rather than ErrAccountNotFound for missing targets, so a
// denied response never confirms whether an account exists.
func (s *ModerationService) guard(ctx context.Context, actor domain.Identity, targetEmail string, min domain.Role) (*domain.Account, *domain.Account, error) {
	if actor.Subject == targetEmail {
		return nil, nil, domain.ErrSelfAction
	}

	actorAcct, err := s.resolveActor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	if !actorAcct.Role.AtLeast(min) {
		return nil, nil, domain.ErrAccessDenied
	}

	target, err := s.accounts.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) && !actorAcct.Role.AtLeast(domain.RoleAdmin) {
			return nil, nil, domain.ErrAccessDenied
		}
		return nil, nil, err
	}

	if !actorAcct.Role.CanActOn(target.Role) {
		return nil, nil, domain.ErrAccessDenied
	}
	return actorAcct, target, nil
}

// resolveActor fetches the actor's live account. A valid token whose account
// no longer exists carries no authority.
func (s *ModerationService) resolveActor(ctx context.Context, actor domain.Identity) (*domain.Account, error) {
	acct, err := s.accounts.FindByEmail(ctx, actor.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	return acct, nil
}

func (s *ModerationService) commit(ctx context.Context, actorAcct, target *domain.Account, action domain.AuditAction) (*domain.Account, error) {
	target.UpdatedAt = time.Now().UTC()

	var updated *domain.Account
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.accounts.Update(ctx, target)
		if err != nil {
			return err
		}
		return s.audit.Insert(ctx, &domain.AuditRecord{
			Action:    action,
			Actor:     actorAcct.Email,
			Target:    target.Email,
			Timestamp: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("actor", actorAcct.Email).
		Str("target", target.Email).
		Str("action", string(action)).
		Msg("moderation action applied")
	return updated, nil
}
