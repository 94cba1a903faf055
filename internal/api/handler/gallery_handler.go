package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumaworks/studio-crm/internal/core/domain"
	"github.com/lumaworks/studio-crm/internal/core/ports"
)

// GalleryHandler handles HTTP requests for gallery operations.
type GalleryHandler struct {
	service ports.GalleryService
}

func NewGalleryHandler(service ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// --- Request / Response types ---

type createGalleryRequest struct {
	ClientID      string `json:"client_id" validate:"required"`
	Title         string `json:"title" validate:"required"`
	ShootDate     string `json:"shoot_date,omitempty"`
	CoverPhotoURL string `json:"cover_photo_url,omitempty"`
}

type transitionGalleryRequest struct {
	Status string `json:"status" validate:"required,oneof=draft proofing delivered archived"`
	Notes  string `json:"notes,omitempty"`
}

type galleryListResponse struct {
	Items      []*domain.Gallery `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create handles POST /v1/galleries.
//
// @Summary      Create a gallery
// @Tags         galleries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGalleryRequest  true  "Gallery details"
// @Success      201   {object}  domain.Gallery
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/galleries [post]
func (h *GalleryHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createGalleryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var shootDate time.Time
	if req.ShootDate != "" {
		shootDate, err = time.Parse(time.RFC3339, req.ShootDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "shoot_date must be RFC 3339")
		}
	}

	gallery, err := h.service.CreateGallery(c.Request().Context(), ports.CreateGalleryInput{
		PhotographerID: claims.PhotographerID,
		ClientID:       req.ClientID,
		Title:          req.Title,
		ShootDate:      shootDate,
		CoverPhotoURL:  req.CoverPhotoURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, gallery)
}

// Get handles GET /v1/galleries/:id.
//
// @Summary      Get a gallery
// @Tags         galleries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Gallery ID"
// @Success      200  {object}  domain.Gallery
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/galleries/{id} [get]
func (h *GalleryHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	gallery, err := h.service.GetGallery(c.Request().Context(), ports.GetGalleryInput{
		GalleryID: c.Param("id"),
		Claims:    claims,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gallery)
}

// List handles GET /v1/galleries.
//
// @Summary      List galleries
// @Tags         galleries
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  galleryListResponse
// @Failure      401     {object}  map[string]string
// @Router       /v1/galleries [get]
func (h *GalleryHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListGalleries(c.Request().Context(), ports.ListGalleriesInput{
		Claims: claims,
		Status: c.QueryParam("status"),
		Page:   intQueryParam(c, "page", 1),
		Limit:  intQueryParam(c, "limit", 0),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, galleryListResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Transition handles POST /v1/galleries/:id/status.
//
// @Summary      Transition a gallery's lifecycle status
// @Tags         galleries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Gallery ID"
// @Param        body  body      transitionGalleryRequest  true  "Target status"
// @Success      200   {object}  domain.Gallery
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/galleries/{id}/status [post]
func (h *GalleryHandler) Transition(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req transitionGalleryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gallery, err := h.service.TransitionGallery(c.Request().Context(), ports.TransitionGalleryInput{
		GalleryID: c.Param("id"),
		Claims:    claims,
		Status:    domain.GalleryStatus(req.Status),
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gallery)
}

// intQueryParam parses an integer query parameter, falling back to def when
// absent or malformed.
func intQueryParam(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
