package service

import (
	"context"
	"errors"
	"testing"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventDeduper mocks the EventDeduper interface
type MockEventDeduper struct {
	mock.Mock
}

func (m *MockEventDeduper) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventDeduper) Unmark(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses stored customer", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		svc := NewPaymentService(gateway, donations, new(MockEventDeduper))

		donations.On("GetCustomer", ctx, "u-1").
			Return(&domain.CustomerMapping{SubjectID: "u-1", CustomerID: "cus_stored"}, nil)
		gateway.On("CreateCheckoutSession", ctx, "cus_stored", "u-1").
			Return("cs_1", "https://pay.example/cs_1", nil)

		session, err := svc.CreateCheckout(ctx, "u-1", "jo@example.org")
		assert.NoError(t, err)
		assert.Equal(t, "cs_1", session.SessionID)
		gateway.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates customer once", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		svc := NewPaymentService(gateway, donations, new(MockEventDeduper))

		donations.On("GetCustomer", ctx, "u-1").Return(nil, nil)
		gateway.On("CreateCustomer", ctx, "jo@example.org", "u-1").Return("cus_new", nil)
		donations.On("EnsureCustomer", ctx, mock.AnythingOfType("*domain.CustomerMapping")).
			Return(&domain.CustomerMapping{SubjectID: "u-1", CustomerID: "cus_new"}, nil)
		gateway.On("CreateCheckoutSession", ctx, "cus_new", "u-1").
			Return("cs_1", "https://pay.example/cs_1", nil)

		session, err := svc.CreateCheckout(ctx, "u-1", "jo@example.org")
		assert.NoError(t, err)
		assert.Equal(t, "https://pay.example/cs_1", session.URL)
		gateway.AssertExpectations(t)
	})

	t.Run("lost insert race uses stored mapping", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		svc := NewPaymentService(gateway, donations, new(MockEventDeduper))

		donations.On("GetCustomer", ctx, "u-1").Return(nil, nil)
		gateway.On("CreateCustomer", ctx, "jo@example.org", "u-1").Return("cus_mine", nil)
		donations.On("EnsureCustomer", ctx, mock.AnythingOfType("*domain.CustomerMapping")).
			Return(&domain.CustomerMapping{SubjectID: "u-1", CustomerID: "cus_theirs"}, nil)
		gateway.On("CreateCheckoutSession", ctx, "cus_theirs", "u-1").
			Return("cs_1", "https://pay.example/cs_1", nil)

		_, err := svc.CreateCheckout(ctx, "u-1", "jo@example.org")
		assert.NoError(t, err)
		gateway.AssertExpectations(t)
	})

	t.Run("provider failure maps to upstream error", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		svc := NewPaymentService(gateway, donations, new(MockEventDeduper))

		donations.On("GetCustomer", ctx, "u-1").Return(nil, nil)
		gateway.On("CreateCustomer", ctx, "jo@example.org", "u-1").
			Return("", errors.New("api down"))

		_, err := svc.CreateCheckout(ctx, "u-1", "jo@example.org")
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)

	completed := &WebhookEvent{
		ID:          "evt_1",
		Type:        EventCheckoutCompleted,
		SessionID:   "cs_1",
		CustomerID:  "cus_1",
		SubjectID:   "u-1",
		AmountTotal: 2500,
		Currency:    "eur",
	}

	t.Run("bad signature has no side effects", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		dedup := new(MockEventDeduper)
		svc := NewPaymentService(gateway, donations, dedup)

		gateway.On("ParseWebhook", payload, "bad-sig").Return(nil, errors.New("signature mismatch"))

		err := svc.HandleWebhook(ctx, payload, "bad-sig")
		assert.ErrorIs(t, err, domain.NewValidationError(""))
		dedup.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
		donations.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
	})

	t.Run("completed event persists one donation", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		dedup := new(MockEventDeduper)
		svc := NewPaymentService(gateway, donations, dedup)

		gateway.On("ParseWebhook", payload, "sig").Return(completed, nil)
		dedup.On("MarkProcessed", ctx, "evt_1").Return(true, nil)

		var stored *domain.Donation
		donations.On("CreateDonation", ctx, mock.AnythingOfType("*domain.Donation")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.Donation)
			}).
			Return(nil)

		err := svc.HandleWebhook(ctx, payload, "sig")
		assert.NoError(t, err)
		assert.Equal(t, int64(2500), stored.AmountCents)
		assert.Equal(t, 25.0, stored.Amount)
		assert.Equal(t, "evt_1", stored.EventID)
	})

	t.Run("failed persist releases the event for a retry", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		dedup := new(MockEventDeduper)
		svc := NewPaymentService(gateway, donations, dedup)

		gateway.On("ParseWebhook", payload, "sig").Return(completed, nil)
		dedup.On("MarkProcessed", ctx, "evt_1").Return(true, nil)
		dedup.On("Unmark", ctx, "evt_1").Return(nil)
		donations.On("CreateDonation", ctx, mock.AnythingOfType("*domain.Donation")).
			Return(errors.New("write timeout")).Once()

		err := svc.HandleWebhook(ctx, payload, "sig")
		assert.Error(t, err)
		dedup.AssertCalled(t, "Unmark", ctx, "evt_1")

		// The released claim lets the retried delivery land the record.
		donations.On("CreateDonation", ctx, mock.AnythingOfType("*domain.Donation")).Return(nil)

		err = svc.HandleWebhook(ctx, payload, "sig")
		assert.NoError(t, err)
		donations.AssertNumberOfCalls(t, "CreateDonation", 2)
	})

	t.Run("duplicate delivery is acknowledged without a write", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		dedup := new(MockEventDeduper)
		svc := NewPaymentService(gateway, donations, dedup)

		gateway.On("ParseWebhook", payload, "sig").Return(completed, nil)
		dedup.On("MarkProcessed", ctx, "evt_1").Return(false, nil)

		err := svc.HandleWebhook(ctx, payload, "sig")
		assert.NoError(t, err)
		donations.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
	})

	t.Run("unknown event type is acknowledged", func(t *testing.T) {
		gateway := new(MockPaymentGateway)
		donations := new(MockDonationRepository)
		dedup := new(MockEventDeduper)
		svc := NewPaymentService(gateway, donations, dedup)

		gateway.On("ParseWebhook", payload, "sig").
			Return(&WebhookEvent{ID: "evt_2", Type: "invoice.paid"}, nil)

		err := svc.HandleWebhook(ctx, payload, "sig")
		assert.NoError(t, err)
		dedup.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything)
		donations.AssertNotCalled(t, "CreateDonation", mock.Anything, mock.Anything)
	})
}
