package ports

import (
	"context"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// PhotographerRepository accesses tenant records. The subscription fields are
// mutated by billing workflows elsewhere; this service creates the record at
// photographer sign-up and otherwise only reads it.
type PhotographerRepository interface {
	// FindByID retrieves a tenant record, including its billing state.
	FindByID(ctx context.Context, id string) (*domain.Photographer, error)
	// Create inserts a new tenant record and fills in its generated ID.
	Create(ctx context.Context, p *domain.Photographer) error
}
