package domain

import (
	"errors"
	"time"
)

// SubscriptionStatus mirrors the billing provider's subscription state.
type SubscriptionStatus string

const (
	SubscriptionTrialing  SubscriptionStatus = "trialing"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionUnlimited SubscriptionStatus = "unlimited"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
	SubscriptionCanceled  SubscriptionStatus = "canceled"
)

// activeStatuses is the closed allow-list consulted by the subscription gate.
// Any status not listed here denies access (fail closed), including statuses
// the billing provider may introduce later.
var activeStatuses = map[SubscriptionStatus]struct{}{
	SubscriptionTrialing:  {},
	SubscriptionActive:    {},
	SubscriptionUnlimited: {},
}

var ErrPhotographerNotFound = errors.New("photographer not found")

// Photographer is the tenant record: one studio, the isolation boundary for
// client-role data. Billing workflows own the subscription fields; this
// service only reads them.
type Photographer struct {
	ID                 string             `json:"id"`
	StudioName         string             `json:"studio_name"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	TrialEndsAt        time.Time          `json:"trial_ends_at"`
	GalleryPlanID      string             `json:"gallery_plan_id,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

// IsSubscriptionActive reports whether the studio may access subscription-gated
// resources.
func (p *Photographer) IsSubscriptionActive() bool {
	_, ok := activeStatuses[p.SubscriptionStatus]
	return ok
}

// HasGalleryPlan reports whether the studio has purchased a gallery plan.
func (p *Photographer) HasGalleryPlan() bool {
	return p.GalleryPlanID != ""
}

// TrialEnded reports whether the studio's trial window has passed at the
// given instant.
func (p *Photographer) TrialEnded(now time.Time) bool {
	return !p.TrialEndsAt.IsZero() && p.TrialEndsAt.Before(now)
}

// PaymentRequiredError is returned when a feature gate denies access. It
// carries structured diagnostics so callers can render differentiated
// messaging without string-matching an error.
type PaymentRequiredError struct {
	SubscriptionStatus  SubscriptionStatus `json:"subscription_status,omitempty"`
	TrialEnded          bool               `json:"trial_ended,omitempty"`
	GalleryPlanRequired bool               `json:"gallery_plan_required,omitempty"`
	UpgradeRequired     bool               `json:"upgrade_required,omitempty"`
}

func (e *PaymentRequiredError) Error() string {
	if e.GalleryPlanRequired {
		return "gallery plan required"
	}
	return "active subscription required"
}
