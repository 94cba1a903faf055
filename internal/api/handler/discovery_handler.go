package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/infrastructure/oauth"
)

// DiscoveryProvider is the slice of the OAuth discovery cache the handler needs.
type DiscoveryProvider interface {
	Document(ctx context.Context) (*oauth.DiscoveryDocument, error)
}

// DiscoveryHandler exposes the cached OIDC provider configuration so clients
// can build their authorization redirect without hardcoding endpoints.
type DiscoveryHandler struct {
	cache DiscoveryProvider
}

func NewDiscoveryHandler(cache DiscoveryProvider) *DiscoveryHandler {
	return &DiscoveryHandler{cache: cache}
}

// Config handles GET /v1/auth/oauth/config.
//
// @Summary      OAuth provider configuration
// @Tags         auth
// @Produce      json
// @Success      200  {object}  oauth.DiscoveryDocument
// @Failure      503  {object}  map[string]string
// @Router       /v1/auth/oauth/config [get]
func (h *DiscoveryHandler) Config(c echo.Context) error {
	doc, err := h.cache.Document(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "oauth provider discovery unavailable")
	}
	return c.JSON(http.StatusOK, doc)
}
