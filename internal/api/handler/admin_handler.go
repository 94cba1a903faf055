package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/api/metrics"
	"github.com/lumaworks/studio-crm/internal/api/middleware"
	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

// AdminHandler handles admin-only operations: impersonation transitions and
// the audit trail.
type AdminHandler struct {
	impersonation ports.ImpersonationService
	auditRepo     ports.AuditRepository
	cookie        CookieOptions
	audit         AuditRecorder
}

func NewAdminHandler(impersonation ports.ImpersonationService, auditRepo ports.AuditRepository, cookie CookieOptions, audit AuditRecorder) *AdminHandler {
	return &AdminHandler{impersonation: impersonation, auditRepo: auditRepo, cookie: cookie, audit: audit}
}

type impersonateRequest struct {
	PhotographerID string `json:"photographer_id" validate:"required"`
}

type impersonateResponse struct {
	Token string `json:"token"`
}

type auditListResponse struct {
	Items []*domain.AuditEvent `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// Impersonate mints a photographer-scoped session for an admin. The returned
// token replaces the admin's own; the old one is discarded client-side.
//
// @Summary      Start impersonating a photographer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      impersonateRequest  true  "Target photographer"
// @Success      200   {object}  impersonateResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/impersonate [post]
func (h *AdminHandler) Impersonate(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req impersonateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.impersonation.Start(c.Request().Context(), claims, req.PhotographerID)
	if err != nil {
		return err
	}

	metrics.ImpersonationsTotal.WithLabelValues("start").Inc()
	h.record(domain.AuditEvent{
		ActorID:        claims.UserID,
		Role:           domain.RoleAdmin,
		Action:         domain.AuditImpersonateStart,
		PhotographerID: req.PhotographerID,
		Timestamp:      time.Now().UTC(),
	})

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, impersonateResponse{Token: token})
}

// ExitImpersonation mints a fresh admin session from an impersonating claim.
// The route is guarded by RequireAdmin, which recognises the impersonating
// admin through the claim's original role.
//
// @Summary      Exit impersonation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  impersonateResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/impersonate/exit [post]
func (h *AdminHandler) ExitImpersonation(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	token, err := h.impersonation.Exit(c.Request().Context(), claims)
	if err != nil {
		return err
	}

	metrics.ImpersonationsTotal.WithLabelValues("exit").Inc()
	actorID := claims.UserID
	if claims.IsImpersonating() {
		actorID = claims.Impersonation.AdminUserID
	}
	h.record(domain.AuditEvent{
		ActorID:        actorID,
		Role:           domain.RoleAdmin,
		Action:         domain.AuditImpersonateExit,
		PhotographerID: claims.PhotographerID,
		Timestamp:      time.Now().UTC(),
	})

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, impersonateResponse{Token: token})
}

// ListAudit returns a page of the authentication audit trail.
//
// @Summary      List audit events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        actor_id  query     string  false  "Filter by actor"
// @Param        action    query     string  false  "Filter by action"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  auditListResponse
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /v1/admin/audit [get]
func (h *AdminHandler) ListAudit(c echo.Context) error {
	filter := ports.ListAuditFilter{
		ActorID: c.QueryParam("actor_id"),
		Action:  c.QueryParam("action"),
		Page:    intQueryParam(c, "page", 1),
		Limit:   intQueryParam(c, "limit", 50),
	}

	items, total, err := h.auditRepo.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, auditListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

func (h *AdminHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AdminHandler) record(event domain.AuditEvent) {
	if h.audit != nil {
		h.audit.Enqueue(event)
	}
}
