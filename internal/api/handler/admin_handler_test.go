package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/api/middleware"
	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

type stubImpersonation struct {
	startToken string
	startErr   error
	exitToken  string
	exitErr    error
	lastTarget string
}

func (s *stubImpersonation) Start(_ context.Context, _ domain.SessionClaims, target string) (string, error) {
	s.lastTarget = target
	if s.startErr != nil {
		return "", s.startErr
	}
	return s.startToken, nil
}

func (s *stubImpersonation) Exit(_ context.Context, _ domain.SessionClaims) (string, error) {
	if s.exitErr != nil {
		return "", s.exitErr
	}
	return s.exitToken, nil
}

type stubAuditLister struct {
	events     []*domain.AuditEvent
	lastFilter ports.ListAuditFilter
}

func (s *stubAuditLister) Insert(_ context.Context, event *domain.AuditEvent) error {
	s.events = append(s.events, event)
	return nil
}

func (s *stubAuditLister) List(_ context.Context, filter ports.ListAuditFilter) ([]*domain.AuditEvent, int64, error) {
	s.lastFilter = filter
	return s.events, int64(len(s.events)), nil
}

func TestAdminHandler_Impersonate(t *testing.T) {
	impersonation := &stubImpersonation{startToken: "impersonation-token"}
	audit := &recordingAudit{}
	h := NewAdminHandler(impersonation, &stubAuditLister{}, testCookieOptions(), audit)

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/admin/impersonate",
		`{"photographer_id":"p1"}`)
	middleware.SetClaims(c, domain.NewClaims("admin1", domain.RoleAdmin, ""))

	if err := h.Impersonate(c); err != nil {
		t.Fatalf("Impersonate returned error: %v", err)
	}
	if impersonation.lastTarget != "p1" {
		t.Fatalf("target not forwarded, got %q", impersonation.lastTarget)
	}

	var body impersonateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Token != "impersonation-token" {
		t.Fatalf("unexpected token: %+v", body)
	}

	// The cookie is replaced so browser sessions switch identity too.
	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "impersonation-token" {
		t.Fatalf("session cookie not replaced: %+v", cookie)
	}

	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditImpersonateStart {
		t.Fatalf("impersonation must be audited, got %+v", audit.events)
	}
	if audit.events[0].ActorID != "admin1" {
		t.Fatalf("audit actor must be the admin, got %+v", audit.events[0])
	}
}

func TestAdminHandler_Impersonate_Validation(t *testing.T) {
	h := NewAdminHandler(&stubImpersonation{}, &stubAuditLister{}, testCookieOptions(), nil)

	c, _ := newHandlerContext(t, http.MethodPost, "/v1/admin/impersonate", `{}`)
	middleware.SetClaims(c, domain.NewClaims("admin1", domain.RoleAdmin, ""))

	err := h.Impersonate(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing photographer_id, got %v", err)
	}
}

func TestAdminHandler_Impersonate_ServiceError(t *testing.T) {
	impersonation := &stubImpersonation{startErr: domain.ErrAlreadyImpersonating}
	h := NewAdminHandler(impersonation, &stubAuditLister{}, testCookieOptions(), nil)

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/admin/impersonate",
		`{"photographer_id":"p1"}`)
	middleware.SetClaims(c, domain.NewImpersonatedClaims("admin1", "p1"))

	if err := h.Impersonate(c); !errors.Is(err, domain.ErrAlreadyImpersonating) {
		t.Fatalf("expected ErrAlreadyImpersonating, got %v", err)
	}
	if cookie := sessionCookie(t, rec); cookie != nil {
		t.Fatalf("no cookie may be set on failure")
	}
}

func TestAdminHandler_ExitImpersonation(t *testing.T) {
	impersonation := &stubImpersonation{exitToken: "admin-token"}
	audit := &recordingAudit{}
	h := NewAdminHandler(impersonation, &stubAuditLister{}, testCookieOptions(), audit)

	c, rec := newHandlerContext(t, http.MethodPost, "/v1/admin/impersonate/exit", "")
	middleware.SetClaims(c, domain.NewImpersonatedClaims("admin1", "p1"))

	if err := h.ExitImpersonation(c); err != nil {
		t.Fatalf("ExitImpersonation returned error: %v", err)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil || cookie.Value != "admin-token" {
		t.Fatalf("session cookie not restored: %+v", cookie)
	}

	// The audited actor is the real admin, not the assumed photographer.
	if len(audit.events) != 1 || audit.events[0].ActorID != "admin1" {
		t.Fatalf("unexpected audit events: %+v", audit.events)
	}
	if audit.events[0].Action != domain.AuditImpersonateExit {
		t.Fatalf("unexpected action: %+v", audit.events[0])
	}
}

func TestAdminHandler_ListAudit(t *testing.T) {
	repo := &stubAuditLister{events: []*domain.AuditEvent{
		{ActorID: "admin1", Action: domain.AuditImpersonateStart},
	}}
	h := NewAdminHandler(&stubImpersonation{}, repo, testCookieOptions(), nil)

	c, rec := newHandlerContext(t, http.MethodGet, "/v1/admin/audit?actor_id=admin1&action=impersonate_start&page=2&limit=10", "")
	middleware.SetClaims(c, domain.NewClaims("admin1", domain.RoleAdmin, ""))

	if err := h.ListAudit(c); err != nil {
		t.Fatalf("ListAudit returned error: %v", err)
	}

	if repo.lastFilter.ActorID != "admin1" || repo.lastFilter.Action != "impersonate_start" {
		t.Fatalf("filters not forwarded: %+v", repo.lastFilter)
	}
	if repo.lastFilter.Page != 2 || repo.lastFilter.Limit != 10 {
		t.Fatalf("pagination not forwarded: %+v", repo.lastFilter)
	}

	var body auditListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Total != 1 || len(body.Items) != 1 {
		t.Fatalf("unexpected listing: %+v", body)
	}
}
