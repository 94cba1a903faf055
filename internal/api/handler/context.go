package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/api/middleware"
	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// ctxClaims extracts the session claim injected by the Authenticate
// middleware and performs a fast-fail check before any service call:
//   - the claim must be present (its absence means the middleware did not run).
//   - photographer and client roles require a tenant scope; without it the
//     token is structurally valid but operationally unusable — reject with 401.
func ctxClaims(c echo.Context) (domain.SessionClaims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return domain.SessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	if claims.Role != domain.RoleAdmin && claims.PhotographerID == "" {
		return domain.SessionClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing tenant scope")
	}

	return claims, nil
}
