package domain

import (
	"errors"
	"time"
)

// GalleryStatus represents the lifecycle state of a client gallery.
type GalleryStatus string

const (
	GalleryDraft     GalleryStatus = "draft"
	GalleryProofing  GalleryStatus = "proofing"
	GalleryDelivered GalleryStatus = "delivered"
	GalleryArchived  GalleryStatus = "archived"
)

// validGalleryTransitions defines the allowed state machine transitions.
var validGalleryTransitions = map[GalleryStatus][]GalleryStatus{
	GalleryDraft:     {GalleryProofing, GalleryArchived},
	GalleryProofing:  {GalleryDelivered, GalleryDraft, GalleryArchived},
	GalleryDelivered: {GalleryArchived},
}

var ErrInvalidGalleryTransition = errors.New("invalid gallery status transition")
var ErrGalleryNotFound = errors.New("gallery not found")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s GalleryStatus) CanTransitionTo(next GalleryStatus) bool {
	for _, allowed := range validGalleryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// GalleryStatusChange records a single status transition on a gallery.
type GalleryStatusChange struct {
	Status    GalleryStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Notes     string        `json:"notes,omitempty"`
}

// Gallery is a set of photos a photographer delivers to one client. It is
// always owned by a tenant: every query against it is scoped by the
// photographer_id taken from the session claim, never from request parameters.
type Gallery struct {
	ID             string                `json:"id"`
	PhotographerID string                `json:"photographer_id"`
	ClientID       string                `json:"client_id"`
	Title          string                `json:"title"`
	ShootDate      time.Time             `json:"shoot_date"`
	CoverPhotoURL  string                `json:"cover_photo_url,omitempty"`
	PhotoCount     int                   `json:"photo_count"`
	Status         GalleryStatus         `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	StatusHistory  []GalleryStatusChange `json:"status_history"`
}
