package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/mail"
	"github.com/beamcollective/portal-api/internal/security"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InviteService creates musician invitations and drives their
// pending-to-terminal lifecycle.
type InviteService struct {
	prospects domain.ProspectRepository
	mailer    mail.Mailer
	baseURL   string
	now       func() time.Time
}

// NewInviteService creates a new invite service.
func NewInviteService(prospects domain.ProspectRepository, mailer mail.Mailer, baseURL string) *InviteService {
	return &InviteService{
		prospects: prospects,
		mailer:    mailer,
		baseURL:   strings.TrimRight(baseURL, "/"),
		now:       time.Now,
	}
}

// Invitation is the creation result handed back to the inviter.
type Invitation struct {
	ProspectID      string `json:"prospect_id"`
	ConfirmationURL string `json:"confirmation_url"`
}

// Create validates the payload, persists a pending prospect with a fresh
// single-use token and a 30-day expiry, and notifies the invitee by mail
// when an address was supplied.
func (s *InviteService) Create(ctx context.Context, invitedBy string, input domain.ProspectCreate) (*Invitation, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Instrument = strings.TrimSpace(input.Instrument)
	input.ProjectID = strings.TrimSpace(input.ProjectID)

	if input.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if input.Instrument == "" {
		return nil, domain.NewValidationError("instrument is required")
	}
	if input.ProjectID == "" {
		return nil, domain.NewValidationError("project_id is required")
	}

	token, err := security.NewConfirmationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	now := s.now()
	prospect := &domain.Prospect{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Instrument: input.Instrument,
		ProjectID:  input.ProjectID,
		Status:     domain.ProspectStatusPending,
		Token:      token,
		InvitedBy:  invitedBy,
		InvitedAt:  now,
		ExpiresAt:  now.Add(domain.InvitationTTL),
	}

	if err := s.prospects.Create(ctx, prospect); err != nil {
		return nil, fmt.Errorf("failed to create prospect: %w", err)
	}

	confirmationURL := s.confirmationURL(prospect.ID, token)

	if prospect.Email != "" {
		if err := s.mailer.SendInvitation(prospect.Email, prospect.Name, confirmationURL); err != nil {
			// Best-effort: the invitation stands, the link can be shared
			// through another channel.
			log.Warn().Err(err).Str("prospect_id", prospect.ID).Msg("Failed to send invitation mail")
		}
	}

	log.Info().
		Str("prospect_id", prospect.ID).
		Str("project_id", prospect.ProjectID).
		Str("invited_by", invitedBy).
		Msg("Invitation created")

	return &Invitation{ProspectID: prospect.ID, ConfirmationURL: confirmationURL}, nil
}

// Fetch returns a prospect for the invitee, using the token as the sole
// credential. Guard order: existence, token, expiry, status.
func (s *InviteService) Fetch(ctx context.Context, prospectID, token string) (*domain.Prospect, error) {
	if prospectID == "" || token == "" {
		return nil, domain.NewValidationError("prospect_id and token are required")
	}

	p, err := s.prospects.Get(ctx, prospectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prospect: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !security.TokenEqual(token, p.Token) {
		return nil, domain.ErrInvalidToken
	}
	if p.Expired(s.now()) {
		return nil, domain.ErrExpired
	}
	if p.Status != domain.ProspectStatusPending {
		return nil, &domain.ConflictError{CurrentStatus: p.Status}
	}

	return p, nil
}

// Confirm transitions a pending prospect to confirmed or declined. The guard
// chain runs in a fixed order and the write itself is conditional on the
// pending status, so two concurrent attempts with the same valid token yield
// exactly one winner.
func (s *InviteService) Confirm(ctx context.Context, input domain.ProspectConfirm) (*domain.Prospect, error) {
	p, err := s.prospects.Get(ctx, input.ProspectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prospect: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !security.TokenEqual(input.Token, p.Token) {
		return nil, domain.ErrInvalidToken
	}
	if p.Expired(s.now()) {
		return nil, domain.ErrExpired
	}
	if p.Status != domain.ProspectStatusPending {
		return nil, &domain.ConflictError{CurrentStatus: p.Status}
	}

	decision := domain.ProspectStatus(input.Decision)
	if !decision.ValidDecision() {
		return nil, domain.NewValidationError("decision must be confirmed or declined")
	}

	transition := domain.ProspectTransition{
		Status: decision,
		At:     s.now(),
	}
	if decision == domain.ProspectStatusConfirmed {
		transition.ResponderEmail = strings.TrimSpace(input.ResponderEmail)
	}

	updated, err := s.prospects.Transition(ctx, p.ID, transition)
	if err != nil {
		return nil, fmt.Errorf("failed to transition prospect: %w", err)
	}
	if updated == nil {
		// The conditional write missed: the record either vanished or a
		// concurrent attempt won. Re-read to report the terminal state.
		current, err := s.prospects.Get(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read prospect: %w", err)
		}
		if current == nil {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.ConflictError{CurrentStatus: current.Status}
	}

	log.Info().
		Str("prospect_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("Invitation resolved")

	return updated, nil
}

func (s *InviteService) confirmationURL(prospectID, token string) string {
	q := url.Values{}
	q.Set("prospectId", prospectID)
	q.Set("token", token)
	return s.baseURL + "/invite/confirm?" + q.Encode()
}
