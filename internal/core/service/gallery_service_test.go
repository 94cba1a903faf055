package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

type stubGalleryRepo struct {
	galleries  []*domain.Gallery
	lastFilter ports.ListGalleriesFilter
}

func (r *stubGalleryRepo) Create(_ context.Context, g *domain.Gallery) error {
	clone := *g
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("g%d", len(r.galleries)+1)
	}
	g.ID = clone.ID
	r.galleries = append(r.galleries, &clone)
	return nil
}

func (r *stubGalleryRepo) FindByID(_ context.Context, id, photographerID string) (*domain.Gallery, error) {
	for _, g := range r.galleries {
		if g.ID == id && g.PhotographerID == photographerID {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGalleryNotFound
}

func (r *stubGalleryRepo) List(_ context.Context, filter ports.ListGalleriesFilter) ([]*domain.Gallery, int64, error) {
	r.lastFilter = filter
	var out []*domain.Gallery
	for _, g := range r.galleries {
		if g.PhotographerID != filter.PhotographerID {
			continue
		}
		if filter.ClientID != "" && g.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && string(g.Status) != filter.Status {
			continue
		}
		clone := *g
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubGalleryRepo) UpdateStatus(_ context.Context, id, photographerID string, status domain.GalleryStatus, change domain.GalleryStatusChange) error {
	for _, g := range r.galleries {
		if g.ID == id && g.PhotographerID == photographerID {
			g.Status = status
			g.StatusHistory = append(g.StatusHistory, change)
			return nil
		}
	}
	return domain.ErrGalleryNotFound
}

func newTestGalleryService(repo *stubGalleryRepo) *GalleryService {
	return NewGalleryService(repo, zerolog.Nop())
}

func seedGallery(repo *stubGalleryRepo, id, photographerID, clientID string, status domain.GalleryStatus) {
	repo.galleries = append(repo.galleries, &domain.Gallery{
		ID:             id,
		PhotographerID: photographerID,
		ClientID:       clientID,
		Title:          "Session " + id,
		Status:         status,
	})
}

func TestGalleryService_CreateGallery(t *testing.T) {
	repo := &stubGalleryRepo{}
	svc := newTestGalleryService(repo)

	gallery, err := svc.CreateGallery(context.Background(), ports.CreateGalleryInput{
		PhotographerID: "p1",
		ClientID:       "c1",
		Title:          "Autumn wedding",
	})
	if err != nil {
		t.Fatalf("CreateGallery returned error: %v", err)
	}
	if gallery.Status != domain.GalleryDraft {
		t.Fatalf("new galleries must start in draft, got %s", gallery.Status)
	}
	if len(gallery.StatusHistory) != 1 || gallery.StatusHistory[0].Status != domain.GalleryDraft {
		t.Fatalf("expected a single draft history entry, got %+v", gallery.StatusHistory)
	}
}

func TestGalleryService_GetGallery_TenantScope(t *testing.T) {
	repo := &stubGalleryRepo{}
	seedGallery(repo, "g1", "p1", "c1", domain.GalleryProofing)
	svc := newTestGalleryService(repo)

	// Owning photographer sees it.
	got, err := svc.GetGallery(context.Background(), ports.GetGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewClaims("u1", domain.RolePhotographer, "p1"),
	})
	if err != nil {
		t.Fatalf("GetGallery returned error: %v", err)
	}
	if got.ID != "g1" {
		t.Fatalf("unexpected gallery: %+v", got)
	}

	// A photographer from another studio gets not-found, never forbidden.
	_, err = svc.GetGallery(context.Background(), ports.GetGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewClaims("u9", domain.RolePhotographer, "p2"),
	})
	if !errors.Is(err, domain.ErrGalleryNotFound) {
		t.Fatalf("expected ErrGalleryNotFound across tenants, got %v", err)
	}

	// An admin claim without a tenant scope cannot read galleries directly.
	_, err = svc.GetGallery(context.Background(), ports.GetGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewClaims("admin1", domain.RoleAdmin, ""),
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unscoped claim, got %v", err)
	}
}

func TestGalleryService_GetGallery_ClientVisibility(t *testing.T) {
	repo := &stubGalleryRepo{}
	seedGallery(repo, "g1", "p1", "c1", domain.GalleryDelivered)
	svc := newTestGalleryService(repo)

	got, err := svc.GetGallery(context.Background(), ports.GetGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewClaims("c1", domain.RoleClient, "p1"),
	})
	if err != nil {
		t.Fatalf("GetGallery returned error: %v", err)
	}
	if got.ID != "g1" {
		t.Fatalf("unexpected gallery: %+v", got)
	}

	// Another client of the same studio must not learn the gallery exists.
	_, err = svc.GetGallery(context.Background(), ports.GetGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewClaims("c2", domain.RoleClient, "p1"),
	})
	if !errors.Is(err, domain.ErrGalleryNotFound) {
		t.Fatalf("expected ErrGalleryNotFound for another client, got %v", err)
	}
}

func TestGalleryService_ListGalleries(t *testing.T) {
	repo := &stubGalleryRepo{}
	seedGallery(repo, "g1", "p1", "c1", domain.GalleryDraft)
	seedGallery(repo, "g2", "p1", "c2", domain.GalleryDelivered)
	seedGallery(repo, "g3", "p2", "c3", domain.GalleryDraft)
	svc := newTestGalleryService(repo)

	// Photographer sees everything in their studio.
	result, err := svc.ListGalleries(context.Background(), ports.ListGalleriesInput{
		Claims: domain.NewClaims("u1", domain.RolePhotographer, "p1"),
	})
	if err != nil {
		t.Fatalf("ListGalleries returned error: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 galleries, got %d", result.Total)
	}
	if result.Page != 1 || result.Limit != defaultPageLimit {
		t.Fatalf("expected page defaults, got page=%d limit=%d", result.Page, result.Limit)
	}

	// Client listings are forced onto their own galleries.
	result, err = svc.ListGalleries(context.Background(), ports.ListGalleriesInput{
		Claims: domain.NewClaims("c2", domain.RoleClient, "p1"),
	})
	if err != nil {
		t.Fatalf("ListGalleries returned error: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "g2" {
		t.Fatalf("client must only see own galleries, got %+v", result.Items)
	}
	if repo.lastFilter.ClientID != "c2" {
		t.Fatalf("client filter not applied at the repository, got %+v", repo.lastFilter)
	}
}

func TestGalleryService_ListGalleries_LimitCap(t *testing.T) {
	repo := &stubGalleryRepo{}
	svc := newTestGalleryService(repo)

	_, err := svc.ListGalleries(context.Background(), ports.ListGalleriesInput{
		Claims: domain.NewClaims("u1", domain.RolePhotographer, "p1"),
		Limit:  1000,
		Page:   -3,
	})
	if err != nil {
		t.Fatalf("ListGalleries returned error: %v", err)
	}
	if repo.lastFilter.Limit != maxPageLimit || repo.lastFilter.Page != 1 {
		t.Fatalf("expected limit capped at %d and page 1, got %+v", maxPageLimit, repo.lastFilter)
	}
}

func TestGalleryService_TransitionGallery(t *testing.T) {
	repo := &stubGalleryRepo{}
	seedGallery(repo, "g1", "p1", "c1", domain.GalleryDraft)
	svc := newTestGalleryService(repo)

	photographer := domain.NewClaims("u1", domain.RolePhotographer, "p1")

	gallery, err := svc.TransitionGallery(context.Background(), ports.TransitionGalleryInput{
		GalleryID: "g1",
		Claims:    photographer,
		Status:    domain.GalleryProofing,
		Notes:     "proofs uploaded",
	})
	if err != nil {
		t.Fatalf("TransitionGallery returned error: %v", err)
	}
	if gallery.Status != domain.GalleryProofing {
		t.Fatalf("expected proofing, got %s", gallery.Status)
	}
	if len(gallery.StatusHistory) == 0 || gallery.StatusHistory[len(gallery.StatusHistory)-1].Notes != "proofs uploaded" {
		t.Fatalf("history entry missing, got %+v", gallery.StatusHistory)
	}

	// Illegal jump: a draft may not skip proofing straight to delivered.
	seedGallery(repo, "g2", "p1", "c1", domain.GalleryDraft)
	_, err = svc.TransitionGallery(context.Background(), ports.TransitionGalleryInput{
		GalleryID: "g2",
		Claims:    photographer,
		Status:    domain.GalleryDelivered,
	})
	if !errors.Is(err, domain.ErrInvalidGalleryTransition) {
		t.Fatalf("expected ErrInvalidGalleryTransition, got %v", err)
	}

	// Clients never transition galleries.
	_, err = svc.TransitionGallery(context.Background(), ports.TransitionGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewClaims("c1", domain.RoleClient, "p1"),
		Status:    domain.GalleryDelivered,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for client, got %v", err)
	}
}

func TestGalleryService_Transition_ImpersonatingAdmin(t *testing.T) {
	repo := &stubGalleryRepo{}
	seedGallery(repo, "g1", "p1", "c1", domain.GalleryDraft)
	svc := newTestGalleryService(repo)

	// An impersonating admin reads as the photographer and may transition.
	gallery, err := svc.TransitionGallery(context.Background(), ports.TransitionGalleryInput{
		GalleryID: "g1",
		Claims:    domain.NewImpersonatedClaims("admin1", "p1"),
		Status:    domain.GalleryProofing,
	})
	if err != nil {
		t.Fatalf("TransitionGallery returned error: %v", err)
	}
	if gallery.Status != domain.GalleryProofing {
		t.Fatalf("expected proofing, got %s", gallery.Status)
	}
}
