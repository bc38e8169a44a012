package ports

import (
	"context"

	"github.com/fintrack/account-system/internal/core/domain"
)

// AuditFilter narrows an audit query. Zero value matches everything.
type AuditFilter struct {
	// Actor limits results to records written by this acting identity.
	Actor string
}

// AuditPage is one page of audit records, most recent first.
type AuditPage struct {
	Records []domain.AuditRecord `json:"records"`
	Total   int64                `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
}

// AuditRepository persists the append-only audit trail. There is no update
// or delete: records are immutable once inserted.
type AuditRepository interface {
	Insert(ctx context.Context, record *domain.AuditRecord) error
	// Find returns records matching filter, sorted most-recent-first with
	// ties broken by insertion order. Page is 1-based.
	Find(ctx context.Context, filter AuditFilter, page, limit int) (*AuditPage, error)
}
