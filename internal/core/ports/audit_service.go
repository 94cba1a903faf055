package ports

import (
	"context"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// AuditService processes authentication audit events off the request path.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}
