package service

import (
	"context"

	"github.com/fintrack/account-system/internal/core/ports"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
)

// AuditService exposes paged, filterable read access to the audit trail.
// There is deliberately no write surface here: records are inserted only by
// the services that perform the audited mutations.
type AuditService struct {
	audit ports.AuditRepository
}

func NewAuditService(audit ports.AuditRepository) *AuditService {
	return &AuditService{audit: audit}
}

// Query returns one page of audit records, most recent first. Page is
// 1-based; out-of-range paging parameters are clamped rather than rejected.
func (s *AuditService) Query(ctx context.Context, filter ports.AuditFilter, page, limit int) (*ports.AuditPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultAuditPageSize
	}
	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}
	return s.audit.Find(ctx, filter, page, limit)
}
