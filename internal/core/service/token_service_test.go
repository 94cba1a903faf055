package service

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", time.Hour, bcrypt.MinCost)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService()

	cases := []struct {
		name   string
		claims domain.SessionClaims
	}{
		{"photographer", domain.NewClaims("u1", domain.RolePhotographer, "p1")},
		{"client", domain.NewClaims("u2", domain.RoleClient, "p1")},
		{"admin", domain.NewClaims("u3", domain.RoleAdmin, "")},
		{"impersonating", domain.NewImpersonatedClaims("admin1", "p9")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := svc.Issue(tc.claims)
			if err != nil {
				t.Fatalf("Issue returned error: %v", err)
			}

			got := svc.Verify(token)
			if got == nil {
				t.Fatalf("Verify returned nil for a freshly issued token")
			}
			if got.UserID != tc.claims.UserID || got.Role != tc.claims.Role || got.PhotographerID != tc.claims.PhotographerID {
				t.Fatalf("claims do not round trip: got %+v, want %+v", got, tc.claims)
			}
			if got.IsImpersonating() != tc.claims.IsImpersonating() {
				t.Fatalf("impersonation state lost in round trip")
			}
		})
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.Issue(domain.NewClaims("u1", domain.RoleAdmin, ""))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Jump the clock past the TTL: the signature is still valid, but the
	// token must verify to nil anyway.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if got := svc.Verify(token); got != nil {
		t.Fatalf("expected nil for expired token, got %+v", got)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenService("other-secret", time.Hour, bcrypt.MinCost).
		Issue(domain.NewClaims("u1", domain.RoleAdmin, ""))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if got := newTestTokenService().Verify(token); got != nil {
		t.Fatalf("expected nil for token signed with a different secret, got %+v", got)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := newTestTokenService()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if got := svc.Verify(token); got != nil {
			t.Fatalf("expected nil for malformed token %q, got %+v", token, got)
		}
	}
}

func TestTokenService_Passwords(t *testing.T) {
	svc := newTestTokenService()

	hash, err := svc.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !svc.VerifyPassword("s3cret-pass", hash) {
		t.Fatalf("correct password did not verify")
	}
	if svc.VerifyPassword("wrong-pass", hash) {
		t.Fatalf("wrong password verified")
	}
}
