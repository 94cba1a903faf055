package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/api/metrics"
	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

// AuditRecorder is the interface the handlers use to enqueue audit events.
type AuditRecorder interface {
	Enqueue(event domain.AuditEvent)
}

// CookieOptions configures the session cookie the auth endpoints manage.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthHandler handles login, registration, logout, and claim introspection.
type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
	audit       AuditRecorder
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions, audit AuditRecorder) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, audit: audit}
}

type loginRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=photographer client admin"`
	PhotographerID string `json:"photographer_id,omitempty"`
}

type registerRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role" validate:"required,oneof=photographer client"`
	PhotographerID string `json:"photographer_id,omitempty"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type claimsResponse struct {
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	PhotographerID string `json:"photographer_id,omitempty"`
	Impersonating  bool   `json:"impersonating"`
	AdminUserID    string `json:"admin_user_id,omitempty"`
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials (role is mandatory; photographer_id is mandatory for clients)"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := domain.Role(req.Role)
	result, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password, ports.LoginOptions{
		Role:           role,
		PhotographerID: req.PhotographerID,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(req.Role, "success").Inc()
	h.record(domain.AuditEvent{
		ActorID:        result.User.ID,
		Role:           result.User.Role,
		Action:         domain.AuditLogin,
		PhotographerID: result.User.PhotographerID,
		Timestamp:      time.Now().UTC(),
	})

	h.setSessionCookie(c, result.Token, h.cookie.TTL)
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Register creates a new user account. Photographer sign-up is open; client
// accounts are created by an authenticated photographer within their own
// tenant (see router wiring).
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Role:           domain.Role(req.Role),
		PhotographerID: req.PhotographerID,
	}

	// A logged-in photographer creating a client: the tenant comes from the
	// claim, never from the payload, so one studio cannot seed users into
	// another. Anonymous callers may only open a photographer account.
	if claims, err := ctxClaims(c); err == nil && claims.Role == domain.RolePhotographer {
		if input.Role != domain.RoleClient {
			return echo.NewHTTPError(http.StatusForbidden, "photographers may only create client accounts")
		}
		input.PhotographerID = claims.PhotographerID
	} else if input.Role != domain.RolePhotographer {
		return echo.NewHTTPError(http.StatusForbidden, "client accounts are created by their studio")
	}

	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	h.record(domain.AuditEvent{
		ActorID:        user.ID,
		Role:           user.Role,
		Action:         domain.AuditRegister,
		PhotographerID: user.PhotographerID,
		Timestamp:      time.Now().UTC(),
	})

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Logout clears the session cookie. The server holds no session state, so
// this is purely a client-side discard; the token itself ages out.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.setSessionCookie(c, "", -time.Hour)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the decoded session claim, impersonation state included.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  claimsResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	resp := claimsResponse{
		UserID:         claims.UserID,
		Role:           string(claims.Role),
		PhotographerID: claims.PhotographerID,
		Impersonating:  claims.IsImpersonating(),
	}
	if claims.IsImpersonating() {
		resp.AdminUserID = claims.Impersonation.AdminUserID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) record(event domain.AuditEvent) {
	if h.audit != nil {
		h.audit.Enqueue(event)
	}
}
