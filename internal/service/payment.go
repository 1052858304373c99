package service

import (
	"context"
	"fmt"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventCheckoutCompleted is the provider event that produces a donation
// record. Everything else is acknowledged without action.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentGateway abstracts the payment provider client.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email, subjectID string) (customerID string, err error)
	CreateCheckoutSession(ctx context.Context, customerID, subjectID string) (sessionID, redirectURL string, err error)
	// ParseWebhook verifies the payload signature before reading any field
	// and returns the decoded event.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// WebhookEvent is the provider-neutral slice of a webhook notification the
// reconciliation step needs.
type WebhookEvent struct {
	ID          string
	Type        string
	SessionID   string
	CustomerID  string
	SubjectID   string
	AmountTotal int64
	Currency    string
}

// CheckoutSession is the caller-facing checkout handle.
type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// EventDeduper records webhook event ids so redeliveries are detected. A
// claim taken with MarkProcessed must be released with Unmark when the
// reconciliation it guards does not complete.
type EventDeduper interface {
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	Unmark(ctx context.Context, eventID string) error
}

// PaymentService bridges checkout creation and asynchronous completion
// notifications into stored donation records.
type PaymentService struct {
	gateway   PaymentGateway
	donations domain.DonationRepository
	dedup     EventDeduper
	now       func() time.Time
}

// NewPaymentService creates a new payment service.
func NewPaymentService(gateway PaymentGateway, donations domain.DonationRepository, dedup EventDeduper) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		donations: donations,
		dedup:     dedup,
		now:       time.Now,
	}
}

// CreateCheckout starts a checkout session for the subject. The provider
// customer is created at most once per subject: the stored mapping wins any
// race, so naive caller retries stay safe.
func (s *PaymentService) CreateCheckout(ctx context.Context, subjectID, email string) (*CheckoutSession, error) {
	mapping, err := s.donations.GetCustomer(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer mapping: %w", err)
	}

	if mapping == nil {
		customerID, err := s.gateway.CreateCustomer(ctx, email, subjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: create customer: %s", domain.ErrUpstream, err)
		}
		mapping, err = s.donations.EnsureCustomer(ctx, &domain.CustomerMapping{
			SubjectID:  subjectID,
			CustomerID: customerID,
			CreatedAt:  s.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store customer mapping: %w", err)
		}
		if mapping.CustomerID != customerID {
			// Lost the insert race; the stored customer id is the one to use.
			log.Debug().Str("subject_id", subjectID).Msg("Concurrent customer creation, using stored mapping")
		}
	}

	sessionID, redirectURL, err := s.gateway.CreateCheckoutSession(ctx, mapping.CustomerID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %s", domain.ErrUpstream, err)
	}

	return &CheckoutSession{SessionID: sessionID, URL: redirectURL}, nil
}

// HandleWebhook verifies and reconciles a completion notification. Signature
// failures reject without side effects; unknown event types and duplicate
// deliveries are acknowledged without action, since the sender retries on
// non-success.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return domain.NewValidationError("invalid webhook signature")
	}

	if event.Type != EventCheckoutCompleted {
		log.Debug().Str("event_type", event.Type).Msg("Ignoring webhook event")
		return nil
	}

	first, err := s.dedup.MarkProcessed(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("failed to dedup webhook event: %w", err)
	}
	if !first {
		log.Debug().Str("event_id", event.ID).Msg("Duplicate webhook delivery acknowledged")
		return nil
	}

	donation := &domain.Donation{
		ID:          uuid.NewString(),
		SubjectID:   event.SubjectID,
		SessionID:   event.SessionID,
		CustomerID:  event.CustomerID,
		EventID:     event.ID,
		AmountCents: event.AmountTotal,
		Amount:      float64(event.AmountTotal) / 100,
		Currency:    event.Currency,
		CreatedAt:   s.now(),
	}

	if err := s.donations.CreateDonation(ctx, donation); err != nil {
		// Release the claim so the provider retry re-attempts the insert.
		// The unique index on the event id blocks a double write either way.
		if unmarkErr := s.dedup.Unmark(ctx, event.ID); unmarkErr != nil {
			log.Error().Err(unmarkErr).Str("event_id", event.ID).Msg("Failed to release webhook dedup claim")
		}
		return fmt.Errorf("failed to persist donation: %w", err)
	}

	log.Info().
		Str("donation_id", donation.ID).
		Str("session_id", donation.SessionID).
		Int64("amount_cents", donation.AmountCents).
		Msg("Donation reconciled")

	return nil
}

// ListDonations exposes reconciled donations to administrative review.
func (s *PaymentService) ListDonations(ctx context.Context, limit int) ([]domain.Donation, error) {
	return s.donations.ListDonations(ctx, limit)
}
