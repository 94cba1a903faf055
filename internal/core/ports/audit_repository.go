package ports

import (
	"context"
	"time"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// ListAuditFilter carries query parameters for the admin audit listing.
type ListAuditFilter struct {
	ActorID  string // optional: scope to one actor
	Action   string // optional: filter by action
	DateFrom time.Time
	DateTo   time.Time
	Page     int // 1-based
	Limit    int
}

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	List(ctx context.Context, filter ListAuditFilter) ([]*domain.AuditEvent, int64, error)
}
