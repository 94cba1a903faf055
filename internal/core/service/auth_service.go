package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

const trialPeriod = 14 * 24 * time.Hour

// AuthService implements the tenant-aware login dispatcher and registration.
type AuthService struct {
	users         ports.UserRepository
	photographers ports.PhotographerRepository
	tokens        ports.TokenService
	log           zerolog.Logger
}

func NewAuthService(users ports.UserRepository, photographers ports.PhotographerRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, photographers: photographers, tokens: tokens, log: log}
}

// Authenticate resolves (email, role, tenant) to a user record, verifies the
// password and issues a session token.
//
// Dispatch rules, evaluated in order:
//  1. Role must be explicit. There is no role-agnostic lookup: the same email
//     is legitimate across roles and tenants.
//  2. A client login requires a photographer ID, checked BEFORE any store
//     lookup. This is the tenant isolation boundary — fail closed.
//  3. Photographer and admin logins are scoped by (email, role) only.
//
// All failure modes — unknown role, missing tenant, user not found, wrong
// password — return domain.ErrInvalidCredentials so the response shape leaks
// nothing about which record exists.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, opts ports.LoginOptions) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var (
		user *domain.User
		err  error
	)
	switch opts.Role {
	case domain.RoleClient:
		if opts.PhotographerID == "" {
			return nil, domain.ErrInvalidCredentials
		}
		user, err = s.users.FindByEmailRolePhotographer(ctx, email, domain.RoleClient, opts.PhotographerID)
	case domain.RolePhotographer, domain.RoleAdmin:
		user, err = s.users.FindByEmailAndRole(ctx, email, opts.Role)
	default:
		return nil, domain.ErrInvalidCredentials
	}

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.tokens.VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	claims := domain.NewClaims(user.ID, user.Role, user.PhotographerID)
	token, err := s.tokens.Issue(claims)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("login succeeded")

	return &ports.LoginResult{User: user, Token: token}, nil
}

// Register creates a new user record with a hashed password. Photographer and
// client roles must carry a tenant reference; admins must not.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || !input.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Role == domain.RoleClient && input.PhotographerID == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Role == domain.RoleAdmin && input.PhotographerID != "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.tokens.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Photographer sign-up creates the tenant record the new account is
	// scoped to, starting on a trial. Billing workflows take over from there.
	if input.Role == domain.RolePhotographer && input.PhotographerID == "" {
		studio := &domain.Photographer{
			StudioName:         input.Name,
			SubscriptionStatus: domain.SubscriptionTrialing,
			TrialEndsAt:        now.Add(trialPeriod),
			CreatedAt:          now,
		}
		if err := s.photographers.Create(ctx, studio); err != nil {
			return nil, err
		}
		input.PhotographerID = studio.ID
	}

	user := &domain.User{
		Email:          input.Email,
		Name:           input.Name,
		PasswordHash:   hash,
		Role:           input.Role,
		PhotographerID: input.PhotographerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}
