package ports

import (
	"context"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
//
// Lookups are always role-scoped: the same email may exist once per role, and
// for clients once per (role, photographer) pair. There is deliberately no
// role-agnostic FindByEmail.
type UserRepository interface {
	// FindByEmailAndRole retrieves a photographer or admin record.
	FindByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	// FindByEmailRolePhotographer retrieves a client record scoped to one tenant.
	FindByEmailRolePhotographer(ctx context.Context, email string, role domain.Role, photographerID string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
