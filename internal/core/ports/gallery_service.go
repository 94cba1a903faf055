package ports

import (
	"context"
	"time"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// CreateGalleryInput carries all data needed to create a new gallery.
// PhotographerID comes from the session claim, never from the payload.
type CreateGalleryInput struct {
	PhotographerID string
	ClientID       string
	Title          string
	ShootDate      time.Time
	CoverPhotoURL  string
}

// GetGalleryInput identifies a gallery together with the caller's scope.
// Claims drive the tenant filter: a client only ever sees galleries addressed
// to them within their own studio.
type GetGalleryInput struct {
	GalleryID string
	Claims    domain.SessionClaims
}

// ListGalleriesInput carries all parameters for the list endpoint.
type ListGalleriesInput struct {
	Claims domain.SessionClaims
	Status string
	Page   int
	Limit  int
}

// ListGalleriesResult is returned by ListGalleries.
type ListGalleriesResult struct {
	Items      []*domain.Gallery
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TransitionGalleryInput requests a status change on a gallery.
type TransitionGalleryInput struct {
	GalleryID string
	Claims    domain.SessionClaims
	Status    domain.GalleryStatus
	Notes     string
}

// GalleryService defines use-case operations for galleries.
type GalleryService interface {
	CreateGallery(ctx context.Context, input CreateGalleryInput) (*domain.Gallery, error)
	GetGallery(ctx context.Context, input GetGalleryInput) (*domain.Gallery, error)
	ListGalleries(ctx context.Context, input ListGalleriesInput) (*ListGalleriesResult, error)
	TransitionGallery(ctx context.Context, input TransitionGalleryInput) (*domain.Gallery, error)
}
