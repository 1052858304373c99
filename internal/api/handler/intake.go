package handler

import (
	"encoding/json"
	"net/http"

	"github.com/beamcollective/portal-api/internal/api/middleware"
	"github.com/beamcollective/portal-api/internal/api/response"
	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/service"
)

// IntakeHandler handles workflow request submissions
type IntakeHandler struct {
	intakeService *service.IntakeService
	listLimit     int
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakeService *service.IntakeService, listLimit int) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService, listLimit: listLimit}
}

// SubmitStaff handles staff join request submission
func (h *IntakeHandler) SubmitStaff(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	var input domain.StaffRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	id, err := h.intakeService.SubmitStaffRequest(r.Context(), userID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, map[string]string{"request_id": id})
}

// SubmitBooking handles event booking request submission
func (h *IntakeHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	var input domain.BookingRequestCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	id, err := h.intakeService.SubmitBookingRequest(r.Context(), userID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, map[string]string{"request_id": id})
}

// SubmitCommunityBooking handles community booking request submission
func (h *IntakeHandler) SubmitCommunityBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	var input domain.CommunityBookingCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	id, err := h.intakeService.SubmitCommunityBooking(r.Context(), userID, input)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, map[string]string{"request_id": id})
}

// ListStaff handles administrative listing of staff join requests
func (h *IntakeHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))

	requests, err := h.intakeService.ListStaffRequests(r.Context(), status, h.listLimit)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"requests": requests})
}
