package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

// ImpersonationService mints and retires impersonation tokens. The server
// keeps no impersonation state: each transition replaces the client's token,
// and the old one simply ages out.
type ImpersonationService struct {
	photographers ports.PhotographerRepository
	tokens        ports.TokenService
	log           zerolog.Logger
}

func NewImpersonationService(photographers ports.PhotographerRepository, tokens ports.TokenService, log zerolog.Logger) *ImpersonationService {
	return &ImpersonationService{photographers: photographers, tokens: tokens, log: log}
}

// Start mints a photographer-scoped token for an admin.
//
// Only a genuine admin session may start one: an already-impersonating claim
// is rejected so identity chains never nest, and a plain photographer or
// client claim is forbidden outright. The target tenant must exist.
func (s *ImpersonationService) Start(ctx context.Context, current domain.SessionClaims, targetPhotographerID string) (string, error) {
	if current.IsImpersonating() {
		return "", domain.ErrAlreadyImpersonating
	}
	if current.Role != domain.RoleAdmin {
		return "", domain.ErrForbidden
	}
	if targetPhotographerID == "" {
		return "", domain.ErrPhotographerNotFound
	}

	if _, err := s.photographers.FindByID(ctx, targetPhotographerID); err != nil {
		return "", fmt.Errorf("impersonate: %w", err)
	}

	token, err := s.tokens.Issue(domain.NewImpersonatedClaims(current.UserID, targetPhotographerID))
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("admin_user_id", current.UserID).
		Str("photographer_id", targetPhotographerID).
		Msg("impersonation started")

	return token, nil
}

// Exit mints a fresh admin token from an impersonating claim. The caller's
// real identity comes from the impersonation block, never from the visible
// (photographer) identity.
func (s *ImpersonationService) Exit(ctx context.Context, current domain.SessionClaims) (string, error) {
	if !current.IsImpersonating() {
		return "", domain.ErrNotImpersonating
	}

	admin := current.Impersonation
	token, err := s.tokens.Issue(domain.NewClaims(admin.AdminUserID, domain.RoleAdmin, ""))
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("admin_user_id", admin.AdminUserID).
		Str("photographer_id", current.PhotographerID).
		Msg("impersonation ended")

	return token, nil
}
