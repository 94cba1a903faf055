package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/core/domain"
)

// The guards operate purely on the attached session claim — no I/O. They all
// require Authenticate to have run; a missing claim is a 401, never a silent
// pass.

// RequireRole rejects with 403 unless the claim's role is in allowedRoles.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

// RequirePhotographer rejects unless the claim is a photographer with a
// tenant scope. An impersonating admin passes: their visible role is
// photographer and their claim carries the target tenant.
func RequirePhotographer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if claims.Role != domain.RolePhotographer || claims.PhotographerID == "" {
				return echo.NewHTTPError(http.StatusForbidden, "photographer access required")
			}
			return next(c)
		}
	}
}

// RequireAdmin is the impersonation-aware admin check: it passes for a
// genuine admin claim AND for an impersonating admin whose visible role reads
// photographer. Without the second path an impersonating admin could never
// reach the exit-impersonation endpoint.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
