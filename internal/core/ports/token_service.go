package ports

import "github.com/lumaworks/studio-crm/internal/core/domain"

// TokenService signs and verifies session tokens and owns the password
// hashing primitive.
type TokenService interface {
	HashPassword(plaintext string) (string, error)
	VerifyPassword(plaintext, hash string) bool

	// Issue serializes the claim into a signed token with a fixed expiry.
	// It fails only on serialization/signing errors, which are unexpected.
	Issue(claims domain.SessionClaims) (string, error)

	// Verify checks signature and expiry. It returns nil on ANY failure —
	// malformed, wrong signature, or expired — with no error value, so
	// callers cannot distinguish attack probes from stale sessions.
	Verify(token string) *domain.SessionClaims
}
