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

// InviteHandler handles invitation endpoints
type InviteHandler struct {
	inviteService *service.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService *service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// Create handles invitation creation
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	var input domain.ProspectCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invitation, err := h.inviteService.Create(r.Context(), userID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, invitation)
}

// Fetch returns a prospect to its invitee. The confirmation token in the
// query string is the only credential.
func (h *InviteHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	prospectID := chi.URLParam(r, "prospectID")
	token := r.URL.Query().Get("token")

	prospect, err := h.inviteService.Fetch(r.Context(), prospectID, token)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, prospect)
}

// Confirm handles the confirm/decline decision
func (h *InviteHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var input domain.ProspectConfirm
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	prospect, err := h.inviteService.Confirm(r.Context(), input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, prospect)
}
