package ports

import "context"

type AuditService interface {
	Query(ctx context.Context, filter AuditFilter, page, limit int) (*AuditPage, error)
}
