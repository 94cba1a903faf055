package ports

import (
	"context"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// ListGalleriesFilter carries query parameters for listing galleries.
// PhotographerID is always enforced by the service layer from the session
// claim — it is the tenant isolation boundary.
type ListGalleriesFilter struct {
	PhotographerID string // always non-empty; set from the claim
	ClientID       string // optional: scope to one client (mandatory for client-role callers)
	Status         string // optional: filter by gallery status
	Page           int    // 1-based
	Limit          int    // max rows per page (capped at 100 by service)
}

// GalleryRepository defines persistence operations for galleries.
type GalleryRepository interface {
	Create(ctx context.Context, g *domain.Gallery) error
	// FindByID retrieves a gallery scoped to one tenant. photographerID is
	// never optional: an unscoped lookup would defeat tenant isolation.
	FindByID(ctx context.Context, id, photographerID string) (*domain.Gallery, error)
	// List returns a page of galleries matching filter and the total count.
	List(ctx context.Context, filter ListGalleriesFilter) ([]*domain.Gallery, int64, error)
	// UpdateStatus atomically sets the gallery's status and appends a history entry.
	UpdateStatus(ctx context.Context, id, photographerID string, status domain.GalleryStatus, change domain.GalleryStatusChange) error
}
