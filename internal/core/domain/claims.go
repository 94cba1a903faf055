package domain

import "errors"

var (
	// ErrAlreadyImpersonating rejects a second impersonation started from an
	// already-impersonating claim. Identity chains must never nest.
	ErrAlreadyImpersonating = errors.New("already impersonating")

	// ErrNotImpersonating rejects an exit-impersonation request from a claim
	// that carries no impersonation state.
	ErrNotImpersonating = errors.New("not impersonating")
)

// Impersonation records the real identity behind an admin acting as a
// photographer. Its presence on a claim is the impersonation marker: a normal
// claim never carries one.
type Impersonation struct {
	// AdminUserID is the real admin's user ID.
	AdminUserID string `json:"admin_user_id"`
	// OriginalRole is the admin's true role, retained so admin-only checks
	// still pass while Role reads "photographer".
	OriginalRole Role `json:"original_role"`
}

// SessionClaims is the authenticated identity and scope decoded from a
// session token. It is immutable once embedded in a token; changing identity
// (login, impersonate, exit) always mints a new token.
type SessionClaims struct {
	UserID         string `json:"user_id"`
	Role           Role   `json:"role"`
	PhotographerID string `json:"photographer_id,omitempty"`

	// Impersonation is nil on every normal session. Only NewImpersonatedClaims
	// sets it, which keeps the "present iff impersonating" invariant in one place.
	Impersonation *Impersonation `json:"impersonation,omitempty"`
}

// NewClaims builds a normal (non-impersonating) session claim.
func NewClaims(userID string, role Role, photographerID string) SessionClaims {
	return SessionClaims{
		UserID:         userID,
		Role:           role,
		PhotographerID: photographerID,
	}
}

// NewImpersonatedClaims builds the claim an admin assumes when acting as a
// photographer: the visible role becomes photographer, scoped to the target
// tenant, while the admin's real identity rides along.
func NewImpersonatedClaims(adminUserID, targetPhotographerID string) SessionClaims {
	return SessionClaims{
		UserID:         adminUserID,
		Role:           RolePhotographer,
		PhotographerID: targetPhotographerID,
		Impersonation: &Impersonation{
			AdminUserID:  adminUserID,
			OriginalRole: RoleAdmin,
		},
	}
}

// IsImpersonating reports whether this claim is an admin acting as a photographer.
func (c SessionClaims) IsImpersonating() bool {
	return c.Impersonation != nil &&
		c.Impersonation.AdminUserID != "" &&
		c.Impersonation.OriginalRole == RoleAdmin
}

// IsAdmin reports whether the claim may pass admin-only checks. True for a
// genuine admin session and for an impersonating admin whose visible role is
// photographer.
func (c SessionClaims) IsAdmin() bool {
	if c.Role == RoleAdmin {
		return true
	}
	return c.IsImpersonating()
}
