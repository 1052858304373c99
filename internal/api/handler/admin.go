package handler

import (
	"encoding/json"
	"net/http"

	"github.com/beamcollective/portal-api/internal/api/middleware"
	"github.com/beamcollective/portal-api/internal/api/response"
	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// AdminHandler handles role administration endpoints
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// SetRole assigns a role to a user profile
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	var input domain.SetRoleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.adminService.SetRole(r.Context(), actorID, input); err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]string{"uid": input.UID, "role": input.Role})
}

// GetProfile returns the stored profile for a user id
func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	profile, err := h.adminService.GetProfile(r.Context(), uid)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, profile)
}
