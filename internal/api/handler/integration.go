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

// IntegrationHandler handles OAuth connect and outreach search endpoints
type IntegrationHandler struct {
	integrationService *service.IntegrationService
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(integrationService *service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

// Connect returns the provider consent URL for the initiating admin
func (h *IntegrationHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	authURL, err := h.integrationService.BeginConnect(r.Context(), userID)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]string{"auth_url": authURL})
}

// Callback finishes the OAuth flow. The state nonce authenticates the
// request; no bearer token is present on the provider redirect.
func (h *IntegrationHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errCode := q.Get("error"); errCode != "" {
		response.BadRequest(w, "consent denied: "+errCode)
		return
	}

	if err := h.integrationService.CompleteConnect(r.Context(), q.Get("state"), q.Get("code")); err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]string{"status": "connected"})
}

// List returns stored grants with token material redacted
func (h *IntegrationHandler) List(w http.ResponseWriter, r *http.Request) {
	credentials, err := h.integrationService.ListIntegrations(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"integrations": credentials})
}

// Delete removes a stored grant
func (h *IntegrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.integrationService.Disconnect(r.Context(), chi.URLParam(r, "provider")); err != nil {
		response.DomainError(w, err)
		return
	}

	response.NoContent(w)
}

type searchRequest struct {
	Query      string `json:"query" validate:"required,max=255"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=50"`
}

// SearchMail runs a roster-aware mailbox search
func (h *IntegrationHandler) SearchMail(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, service.SearchKindMail)
}

// SearchDrive runs a roster-aware drive search
func (h *IntegrationHandler) SearchDrive(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, service.SearchKindDrive)
}

func (h *IntegrationHandler) search(w http.ResponseWriter, r *http.Request, kind string) {
	var input searchRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.integrationService.Search(r.Context(), kind, input.Query, input.MaxResults)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, result)
}
