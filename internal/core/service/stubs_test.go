package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/account-system/internal/core/domain"
	"github.com/fintrack/account-system/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.accounts[email]
	return ok, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Email]; exists {
		return nil, domain.ErrAccountExists
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("acct-%d", r.nextID)
	r.accounts[copy.Email] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Email]; !exists {
		return nil, domain.ErrAccountNotFound
	}
	r.accounts[account.Email] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, email string) error {
	if _, exists := r.accounts[email]; !exists {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, email)
	return nil
}

type stubAuditRepo struct {
	records []domain.AuditRecord
}

func (r *stubAuditRepo) Insert(_ context.Context, record *domain.AuditRecord) error {
	copy := *record
	copy.ID = fmt.Sprintf("audit-%d", len(r.records)+1)
	r.records = append(r.records, copy)
	return nil
}

func (r *stubAuditRepo) Find(_ context.Context, filter ports.AuditFilter, page, limit int) (*ports.AuditPage, error) {
	var matched []domain.AuditRecord
	// Newest first, ties broken by insertion order: walk backwards.
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if filter.Actor != "" && rec.Actor != filter.Actor {
			continue
		}
		matched = append(matched, rec)
	}

	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	return &ports.AuditPage{
		Records: matched[start:end],
		Total:   int64(len(matched)),
		Page:    page,
		Limit:   limit,
	}, nil
}

type stubDenylist struct {
	revoked map[string]time.Time
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.revoked[tokenID] = until
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// stubTx runs the function directly; atomicity is the real store's concern.
type stubTx struct{}

func (stubTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
