package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IntakeService validates and persists administrative workflow requests.
// Validation is purely structural and always runs before any persistence
// call; a request with any invalid selection is rejected wholesale.
type IntakeService struct {
	repo          domain.IntakeRepository
	maxSelections int
	now           func() time.Time
}

// NewIntakeService creates a new intake service.
func NewIntakeService(repo domain.IntakeRepository, maxSelections int) *IntakeService {
	if maxSelections <= 0 {
		maxSelections = 5
	}
	return &IntakeService{repo: repo, maxSelections: maxSelections, now: time.Now}
}

// SubmitStaffRequest validates and stores a staff join request, returning
// the generated request id.
func (s *IntakeService) SubmitStaffRequest(ctx context.Context, userID string, input domain.StaffRequestCreate) (string, error) {
	if len(input.Selections) == 0 {
		return "", domain.NewValidationError("at least one area selection is required")
	}
	if len(input.Selections) > s.maxSelections {
		return "", domain.NewValidationError(fmt.Sprintf("at most %d selections are allowed", s.maxSelections))
	}

	selections := make([]domain.AreaSelection, 0, len(input.Selections))
	for i, sel := range input.Selections {
		clean, err := sanitizeSelection(sel)
		if err != nil {
			return "", domain.NewValidationError(fmt.Sprintf("selection %d: %s", i+1, err.Error()))
		}
		selections = append(selections, clean)
	}

	now := s.now()
	req := &domain.StaffRequest{
		ID:         uuid.NewString(),
		UserID:     userID,
		Selections: selections,
		Status:     domain.RequestStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateStaffRequest(ctx, req); err != nil {
		return "", fmt.Errorf("failed to persist staff request: %w", err)
	}

	log.Info().
		Str("request_id", req.ID).
		Str("user_id", userID).
		Int("selections", len(selections)).
		Msg("Staff join request submitted")

	return req.ID, nil
}

// sanitizeSelection trims every free-text field, drops empty list entries,
// and rejects unknown enumerated values instead of coercing them. A
// selection left without roles after filtering is an error: the whole
// request must be resubmitted corrected, partial success is not offered.
func sanitizeSelection(sel domain.AreaSelection) (domain.AreaSelection, error) {
	sel.AreaID = domain.AreaID(strings.TrimSpace(string(sel.AreaID)))
	sel.AreaTitle = strings.TrimSpace(sel.AreaTitle)
	sel.Intent = strings.TrimSpace(sel.Intent)

	if !domain.ValidAreaID(sel.AreaID) {
		return sel, fmt.Errorf("unknown area id %q", sel.AreaID)
	}
	if sel.AreaTitle == "" {
		return sel, fmt.Errorf("area title is required")
	}

	sel.RoleIDs = filterNonEmpty(sel.RoleIDs)
	sel.RoleTitles = filterNonEmpty(sel.RoleTitles)
	if len(sel.RoleIDs) == 0 {
		return sel, fmt.Errorf("at least one role id is required")
	}
	if len(sel.RoleTitles) == 0 {
		return sel, fmt.Errorf("at least one role title is required")
	}

	return sel, nil
}

func filterNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SubmitBookingRequest validates and stores an event booking request.
func (s *IntakeService) SubmitBookingRequest(ctx context.Context, userID string, input domain.BookingRequestCreate) (string, error) {
	date := strings.TrimSpace(input.Date)
	location := strings.TrimSpace(input.Location)
	instrumentation := strings.TrimSpace(input.Instrumentation)
	if date == "" || location == "" || instrumentation == "" {
		return "", domain.NewValidationError("date, location and instrumentation are required")
	}

	req := &domain.BookingRequest{
		ID:              uuid.NewString(),
		UserID:          userID,
		Kind:            domain.BookingKindEvent,
		Date:            date,
		Location:        location,
		Instrumentation: instrumentation,
		Status:          domain.RequestStatusPending,
		CreatedAt:       s.now(),
	}

	if err := s.repo.CreateBookingRequest(ctx, req); err != nil {
		return "", fmt.Errorf("failed to persist booking request: %w", err)
	}

	log.Info().Str("request_id", req.ID).Str("user_id", userID).Msg("Booking request submitted")
	return req.ID, nil
}

// SubmitCommunityBooking validates and stores a community booking request.
func (s *IntakeService) SubmitCommunityBooking(ctx context.Context, userID string, input domain.CommunityBookingCreate) (string, error) {
	orchestraID := strings.TrimSpace(input.OrchestraID)
	orchestraName := strings.TrimSpace(input.OrchestraName)
	instrument := strings.TrimSpace(input.Instrument)
	if orchestraID == "" || orchestraName == "" || instrument == "" {
		return "", domain.NewValidationError("orchestra_id, orchestra_name and instrument are required")
	}

	req := &domain.BookingRequest{
		ID:            uuid.NewString(),
		UserID:        userID,
		Kind:          domain.BookingKindCommunity,
		OrchestraID:   orchestraID,
		OrchestraName: orchestraName,
		Instrument:    instrument,
		Status:        domain.RequestStatusPending,
		CreatedAt:     s.now(),
	}

	if err := s.repo.CreateBookingRequest(ctx, req); err != nil {
		return "", fmt.Errorf("failed to persist community booking: %w", err)
	}

	log.Info().Str("request_id", req.ID).Str("user_id", userID).Msg("Community booking submitted")
	return req.ID, nil
}

// ListStaffRequests exposes pending requests to administrative review.
func (s *IntakeService) ListStaffRequests(ctx context.Context, status domain.RequestStatus, limit int) ([]domain.StaffRequest, error) {
	if status != "" {
		switch status {
		case domain.RequestStatusPending, domain.RequestStatusApproved, domain.RequestStatusDeclined:
		default:
			return nil, domain.NewValidationError(fmt.Sprintf("unknown status %q", status))
		}
	}
	return s.repo.ListStaffRequests(ctx, status, limit)
}
