package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/api/metrics"
	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

// AuditRecorder is the slice of the audit dispatcher the gates need. Enqueue
// must not block the request path.
type AuditRecorder interface {
	Enqueue(event domain.AuditEvent)
}

// FeatureGates are the billing-state checks applied after authentication and
// role guards. They consult the tenant record, never mutate the claim, and
// fail closed: an unknown subscription status denies access.
type FeatureGates struct {
	photographers ports.PhotographerRepository
	audit         AuditRecorder
	now           func() time.Time
}

func NewFeatureGates(photographers ports.PhotographerRepository, audit AuditRecorder) *FeatureGates {
	return &FeatureGates{
		photographers: photographers,
		audit:         audit,
		now:           time.Now,
	}
}

// RequireActiveSubscription blocks photographer requests whose studio has no
// usable subscription. Admins bypass entirely (including impersonating
// admins); non-photographer roles pass through untouched, since subscription
// gating only applies to photographer-owned resources.
func (g *FeatureGates) RequireActiveSubscription() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			photographer, claims, skip, err := g.loadTenant(c)
			if skip {
				return next(c)
			}
			if err != nil {
				return err
			}

			if !photographer.IsSubscriptionActive() {
				metrics.GateDenialsTotal.WithLabelValues("subscription").Inc()
				g.recordDenial(claims, "subscription")
				return &domain.PaymentRequiredError{
					SubscriptionStatus: photographer.SubscriptionStatus,
					TrialEnded:         photographer.TrialEnded(g.now()),
				}
			}
			return next(c)
		}
	}
}

// RequireGalleryPlan blocks photographer requests whose studio has not
// purchased a gallery plan. Bypass and pass-through rules match the
// subscription gate.
func (g *FeatureGates) RequireGalleryPlan() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			photographer, claims, skip, err := g.loadTenant(c)
			if skip {
				return next(c)
			}
			if err != nil {
				return err
			}

			if !photographer.HasGalleryPlan() {
				metrics.GateDenialsTotal.WithLabelValues("gallery_plan").Inc()
				g.recordDenial(claims, "gallery_plan")
				return &domain.PaymentRequiredError{
					GalleryPlanRequired: true,
					UpgradeRequired:     true,
				}
			}
			return next(c)
		}
	}
}

// loadTenant resolves the tenant record for the current claim. skip=true
// means the gate does not apply (admin bypass or non-photographer role).
func (g *FeatureGates) loadTenant(c echo.Context) (*domain.Photographer, domain.SessionClaims, bool, error) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return nil, claims, false, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if claims.IsAdmin() || claims.Role != domain.RolePhotographer {
		return nil, claims, true, nil
	}

	photographer, err := g.photographers.FindByID(c.Request().Context(), claims.PhotographerID)
	if err != nil {
		if errors.Is(err, domain.ErrPhotographerNotFound) {
			// The claim references a tenant that no longer exists: a data
			// integrity anomaly, not a billing problem.
			return nil, claims, false, domain.ErrPhotographerNotFound
		}
		return nil, claims, false, fmt.Errorf("feature gate: load photographer: %w", err)
	}
	return photographer, claims, false, nil
}

func (g *FeatureGates) recordDenial(claims domain.SessionClaims, gate string) {
	if g.audit == nil {
		return
	}
	g.audit.Enqueue(domain.AuditEvent{
		ActorID:        claims.UserID,
		Role:           claims.Role,
		Action:         domain.AuditGateDenied,
		PhotographerID: claims.PhotographerID,
		Detail:         gate,
		Timestamp:      g.now().UTC(),
	})
}
