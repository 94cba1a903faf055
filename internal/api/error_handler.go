package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// paymentRequiredResponse is the structured 402 envelope. The diagnostic
// fields let callers render differentiated billing prompts without
// string-matching the message.
type paymentRequiredResponse struct {
	Error               string                    `json:"error"`
	SubscriptionStatus  domain.SubscriptionStatus `json:"subscription_status,omitempty"`
	TrialEnded          bool                      `json:"trial_ended,omitempty"`
	GalleryPlanRequired bool                      `json:"gallery_plan_required,omitempty"`
	UpgradeRequired     bool                      `json:"upgrade_required,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders feature-gate denials as structured 402 payloads.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		// Feature-gate denials carry diagnostics, not just a message.
		var pr *domain.PaymentRequiredError
		if errors.As(err, &pr) {
			_ = c.JSON(http.StatusPaymentRequired, paymentRequiredResponse{
				Error:               pr.Error(),
				SubscriptionStatus:  pr.SubscriptionStatus,
				TrialEnded:          pr.TrialEnded,
				GalleryPlanRequired: pr.GalleryPlanRequired,
				UpgradeRequired:     pr.UpgradeRequired,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrAlreadyImpersonating):
		return http.StatusForbidden, "already impersonating"
	case errors.Is(err, domain.ErrNotImpersonating):
		return http.StatusForbidden, "not impersonating"
	case errors.Is(err, domain.ErrPhotographerNotFound):
		return http.StatusNotFound, "photographer not found"
	case errors.Is(err, domain.ErrGalleryNotFound):
		return http.StatusNotFound, "gallery not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrInvalidGalleryTransition):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
