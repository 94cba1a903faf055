package ports

import (
	"context"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// LoginOptions selects which identity space a login attempt targets. Role is
// mandatory; PhotographerID is mandatory when Role is client.
type LoginOptions struct {
	Role           domain.Role
	PhotographerID string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User  *domain.User
	Token string
}

// RegisterInput carries the data needed to create a new user record.
type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	Role           domain.Role
	PhotographerID string
}

// AuthService implements tenant-aware login and registration.
type AuthService interface {
	// Authenticate resolves (email, role, tenant) to a user record, verifies
	// the password and issues a session token. Every failure mode returns
	// domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string, opts LoginOptions) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

// ImpersonationService mints and retires impersonation tokens.
type ImpersonationService interface {
	// Start mints a photographer-scoped token for an admin. The current claim
	// must be a genuine, non-impersonating admin and the target tenant must exist.
	Start(ctx context.Context, current domain.SessionClaims, targetPhotographerID string) (string, error)
	// Exit mints a fresh admin token from an impersonating claim.
	Exit(ctx context.Context, current domain.SessionClaims) (string, error)
}
