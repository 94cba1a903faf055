package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// sessionClaims is the JWT payload: the domain claim plus registered claims
// carrying the expiry.
type sessionClaims struct {
	UserID         string                `json:"user_id"`
	Role           domain.Role           `json:"role"`
	PhotographerID string                `json:"photographer_id,omitempty"`
	Impersonation  *domain.Impersonation `json:"impersonation,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 session tokens and wraps bcrypt for
// password storage. The signing secret is injected at construction; nothing
// here reads ambient state.
type TokenService struct {
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, bcryptCost int) *TokenService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &TokenService{
		secret:     []byte(secret),
		ttl:        ttl,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// HashPassword produces a salted bcrypt hash of the plaintext.
func (s *TokenService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash, using
// bcrypt's own constant-time comparison.
func (s *TokenService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Issue signs the claim into a token expiring ttl from now.
func (s *TokenService) Issue(claims domain.SessionClaims) (string, error) {
	now := s.now().UTC()
	payload := sessionClaims{
		UserID:         claims.UserID,
		Role:           claims.Role,
		PhotographerID: claims.PhotographerID,
		Impersonation:  claims.Impersonation,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claim.
//
// It returns nil on every failure — malformed token, wrong signature, expired,
// or an impersonation block that breaks the claim invariant. Collapsing the
// failure modes is deliberate: callers must not be able to tell an attack
// probe from a stale session.
func (s *TokenService) Verify(token string) *domain.SessionClaims {
	var payload sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &payload, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil
	}

	claims := domain.SessionClaims{
		UserID:         payload.UserID,
		Role:           payload.Role,
		PhotographerID: payload.PhotographerID,
		Impersonation:  payload.Impersonation,
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil
	}
	// A token carrying a half-formed impersonation block is tampered.
	if claims.Impersonation != nil && !claims.IsImpersonating() {
		return nil
	}
	return &claims
}
