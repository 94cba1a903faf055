package domain

import (
	"errors"
	"time"
)

// Role identifies the kind of actor a user record represents.
type Role string

const (
	RolePhotographer Role = "photographer"
	RoleClient       Role = "client"
	RoleAdmin        Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePhotographer, RoleClient, RoleAdmin:
		return true
	}
	return false
}

var (
	// ErrInvalidCredentials is the single outward signal for every login
	// failure: unknown email, wrong password, missing role, missing tenant
	// scope. Collapsing them prevents account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrForbidden    = errors.New("access forbidden")

	// ErrUnauthenticated signals a request that reached a guard without a
	// claim attached — the auth middleware did not run or rejected the token.
	ErrUnauthenticated = errors.New("authentication required")
)

// User models an identity record in the CRM.
//
// PhotographerID is the tenant reference: for a photographer it is their own
// tenant ID, for a client it is the studio they belong to, and for an admin
// it is empty. The same email may legitimately exist as a client under several
// studios, which is why every lookup is scoped by role (and tenant, for clients).
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	PhotographerID string    `json:"photographer_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
