package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

func newTestImpersonationService(photographers *stubPhotographerRepo) (*ImpersonationService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour, bcrypt.MinCost)
	return NewImpersonationService(photographers, tokens, zerolog.Nop()), tokens
}

func TestImpersonationService_StartAndExit(t *testing.T) {
	photographers := newStubPhotographerRepo()
	photographers.photographers["p1"] = &domain.Photographer{ID: "p1", StudioName: "Luma"}
	svc, tokens := newTestImpersonationService(photographers)

	admin := domain.NewClaims("admin1", domain.RoleAdmin, "")

	token, err := svc.Start(context.Background(), admin, "p1")
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	claims := tokens.Verify(token)
	if claims == nil {
		t.Fatalf("impersonation token does not verify")
	}
	if claims.Role != domain.RolePhotographer || claims.PhotographerID != "p1" {
		t.Fatalf("impersonation token must read as the target photographer, got %+v", claims)
	}
	if !claims.IsImpersonating() {
		t.Fatalf("impersonation token must carry the impersonation block")
	}
	if claims.Impersonation.AdminUserID != "admin1" || claims.Impersonation.OriginalRole != domain.RoleAdmin {
		t.Fatalf("unexpected impersonation block: %+v", claims.Impersonation)
	}

	exitToken, err := svc.Exit(context.Background(), *claims)
	if err != nil {
		t.Fatalf("Exit returned error: %v", err)
	}
	restored := tokens.Verify(exitToken)
	if restored == nil {
		t.Fatalf("exit token does not verify")
	}
	if restored.UserID != "admin1" || restored.Role != domain.RoleAdmin || restored.PhotographerID != "" {
		t.Fatalf("exit must restore the admin identity, got %+v", restored)
	}
	if restored.IsImpersonating() {
		t.Fatalf("exit token must not still be impersonating")
	}
}

func TestImpersonationService_Start_Rejections(t *testing.T) {
	photographers := newStubPhotographerRepo()
	photographers.photographers["p1"] = &domain.Photographer{ID: "p1"}
	svc, _ := newTestImpersonationService(photographers)

	cases := []struct {
		name    string
		current domain.SessionClaims
		target  string
		wantErr error
	}{
		{"already impersonating", domain.NewImpersonatedClaims("admin1", "p1"), "p1", domain.ErrAlreadyImpersonating},
		{"photographer caller", domain.NewClaims("u1", domain.RolePhotographer, "p1"), "p1", domain.ErrForbidden},
		{"client caller", domain.NewClaims("u2", domain.RoleClient, "p1"), "p1", domain.ErrForbidden},
		{"empty target", domain.NewClaims("admin1", domain.RoleAdmin, ""), "", domain.ErrPhotographerNotFound},
		{"unknown target", domain.NewClaims("admin1", domain.RoleAdmin, ""), "ghost", domain.ErrPhotographerNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Start(context.Background(), tc.current, tc.target); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestImpersonationService_Exit_NotImpersonating(t *testing.T) {
	svc, _ := newTestImpersonationService(newStubPhotographerRepo())

	for _, claims := range []domain.SessionClaims{
		domain.NewClaims("admin1", domain.RoleAdmin, ""),
		domain.NewClaims("u1", domain.RolePhotographer, "p1"),
	} {
		if _, err := svc.Exit(context.Background(), claims); !errors.Is(err, domain.ErrNotImpersonating) {
			t.Fatalf("expected ErrNotImpersonating for %+v, got %v", claims, err)
		}
	}
}
