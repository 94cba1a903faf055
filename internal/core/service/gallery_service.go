package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type GalleryService struct {
	repo ports.GalleryRepository
	log  zerolog.Logger
}

func NewGalleryService(repo ports.GalleryRepository, log zerolog.Logger) *GalleryService {
	return &GalleryService{repo: repo, log: log}
}

// CreateGallery creates a new draft gallery owned by the calling photographer.
func (s *GalleryService) CreateGallery(ctx context.Context, input ports.CreateGalleryInput) (*domain.Gallery, error) {
	now := time.Now().UTC()
	gallery := &domain.Gallery{
		PhotographerID: input.PhotographerID,
		ClientID:       input.ClientID,
		Title:          input.Title,
		ShootDate:      input.ShootDate,
		CoverPhotoURL:  input.CoverPhotoURL,
		Status:         domain.GalleryDraft,
		CreatedAt:      now,
		StatusHistory: []domain.GalleryStatusChange{
			{Status: domain.GalleryDraft, Timestamp: now},
		},
	}

	if err := s.repo.Create(ctx, gallery); err != nil {
		return nil, fmt.Errorf("create gallery: %w", err)
	}

	s.log.Info().
		Str("photographer_id", gallery.PhotographerID).
		Str("client_id", gallery.ClientID).
		Msg("gallery created")

	return gallery, nil
}

// GetGallery retrieves one gallery within the caller's tenant scope. The
// tenant filter comes from the claim, never from request parameters, and a
// client additionally only sees galleries addressed to them.
func (s *GalleryService) GetGallery(ctx context.Context, input ports.GetGalleryInput) (*domain.Gallery, error) {
	tenant := input.Claims.PhotographerID
	if tenant == "" {
		return nil, domain.ErrForbidden
	}

	gallery, err := s.repo.FindByID(ctx, input.GalleryID, tenant)
	if err != nil {
		return nil, err
	}

	if input.Claims.Role == domain.RoleClient && gallery.ClientID != input.Claims.UserID {
		// Hide the gallery's existence from other clients of the same studio.
		return nil, domain.ErrGalleryNotFound
	}
	return gallery, nil
}

// ListGalleries returns a page of galleries within the caller's tenant scope.
func (s *GalleryService) ListGalleries(ctx context.Context, input ports.ListGalleriesInput) (*ports.ListGalleriesResult, error) {
	tenant := input.Claims.PhotographerID
	if tenant == "" {
		return nil, domain.ErrForbidden
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListGalleriesFilter{
		PhotographerID: tenant,
		Status:         input.Status,
		Page:           page,
		Limit:          limit,
	}
	if input.Claims.Role == domain.RoleClient {
		filter.ClientID = input.Claims.UserID
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListGalleriesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// TransitionGallery moves a gallery through its lifecycle. Only the owning
// photographer (or an impersonating admin, whose claim reads photographer)
// may transition; the state machine rejects illegal moves.
func (s *GalleryService) TransitionGallery(ctx context.Context, input ports.TransitionGalleryInput) (*domain.Gallery, error) {
	if input.Claims.Role != domain.RolePhotographer || input.Claims.PhotographerID == "" {
		return nil, domain.ErrForbidden
	}

	gallery, err := s.repo.FindByID(ctx, input.GalleryID, input.Claims.PhotographerID)
	if err != nil {
		return nil, err
	}

	if !gallery.Status.CanTransitionTo(input.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidGalleryTransition, gallery.Status, input.Status)
	}

	change := domain.GalleryStatusChange{
		Status:    input.Status,
		Timestamp: time.Now().UTC(),
		Notes:     input.Notes,
	}
	if err := s.repo.UpdateStatus(ctx, gallery.ID, input.Claims.PhotographerID, input.Status, change); err != nil {
		return nil, fmt.Errorf("transition gallery: %w", err)
	}

	gallery.Status = input.Status
	gallery.StatusHistory = append(gallery.StatusHistory, change)
	return gallery, nil
}
