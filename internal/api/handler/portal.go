package handler

import (
	"net/http"
	"strconv"

	"github.com/beamcollective/portal-api/internal/api/middleware"
	"github.com/beamcollective/portal-api/internal/api/response"
	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/tenant"
	"github.com/go-chi/chi/v5"
)

// PortalHandler serves tenant-scoped portal content
type PortalHandler struct {
	registry *tenant.Registry
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(registry *tenant.Registry) *PortalHandler {
	return &PortalHandler{registry: registry}
}

// Context returns the tenant identity and locale bundle for a tenant key.
func (h *PortalHandler) Context(w http.ResponseWriter, r *http.Request) {
	cfg, loc, err := h.registry.Resolve(chi.URLParam(r, "tenantKey"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"tenant": map[string]string{
			"key":        cfg.Key,
			"name":       cfg.Name,
			"short_name": cfg.ShortName,
		},
		"locale": loc,
	})
}

// Slides returns the audience-filtered carousel for a surface. Anonymous
// callers see the public audience; staff-only slides need an admin identity.
func (h *PortalHandler) Slides(w http.ResponseWriter, r *http.Request) {
	cfg, _, err := h.registry.Resolve(chi.URLParam(r, "tenantKey"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	slides := cfg.HomeSlides
	surface := r.URL.Query().Get("surface")
	switch surface {
	case "", "home":
	case "recordings":
		slides = cfg.RecordingSlides
	default:
		response.BadRequest(w, "surface must be home or recordings")
		return
	}

	role := domain.RoleAudience
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		role = claims.Role
	}

	visible := make([]domain.HeroSlide, 0, len(slides))
	for _, s := range slides {
		if s.VisibleTo(role) {
			visible = append(visible, s)
		}
	}

	response.OK(w, map[string]any{"slides": visible})
}

// Projects returns the tenant's project listing.
func (h *PortalHandler) Projects(w http.ResponseWriter, r *http.Request) {
	cfg, _, err := h.registry.Resolve(chi.URLParam(r, "tenantKey"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"projects": cfg.Projects})
}

// Nav returns the resolved navigation menu. The scoped flag selects between
// tenant-prefixed paths and the single default deployment; private entries
// appear only when requested.
func (h *PortalHandler) Nav(w http.ResponseWriter, r *http.Request) {
	cfg, loc, err := h.registry.Resolve(chi.URLParam(r, "tenantKey"))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	q := r.URL.Query()
	scoped := true
	if v := q.Get("scoped"); v != "" {
		scoped, err = strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "scoped must be a boolean")
			return
		}
	}
	includePrivate, _ := strconv.ParseBool(q.Get("private"))

	response.OK(w, map[string]any{
		"entries": tenant.BuildNav(loc, cfg.Key, scoped, includePrivate),
	})
}
