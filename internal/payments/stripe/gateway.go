package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beamcollective/portal-api/internal/config"
	"github.com/beamcollective/portal-api/internal/service"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Gateway implements service.PaymentGateway against Stripe.
type Gateway struct {
	api           *client.API
	priceID       string
	successURL    string
	cancelURL     string
	webhookSecret string
}

// NewGateway creates a Stripe gateway from configuration.
func NewGateway(cfg config.StripeConfig) *Gateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Gateway{
		api:           api,
		priceID:       cfg.PriceID,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		webhookSecret: cfg.WebhookSecret,
	}
}

// CreateCustomer creates a Stripe customer tagged with the portal subject
// id. The caller is responsible for storing the mapping exactly once.
func (g *Gateway) CreateCustomer(ctx context.Context, email, subjectID string) (string, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if email != "" {
		params.Email = stripe.String(email)
	}
	params.AddMetadata("subject_id", subjectID)

	cust, err := g.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return cust.ID, nil
}

// CreateCheckoutSession starts a subscription checkout for the customer. The
// subject id rides along as the client reference so the webhook can link the
// completed session back to a portal identity.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, customerID, subjectID string) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(g.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(subjectID),
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe checkout session create: %w", err)
	}
	return sess.ID, sess.URL, nil
}

// ParseWebhook verifies the signature against the shared secret before
// touching any field of the payload.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*service.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe webhook verification: %w", err)
	}

	out := &service.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if out.Type != service.EventCheckoutCompleted {
		return out, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("stripe webhook decode: %w", err)
	}

	out.SessionID = session.ID
	out.SubjectID = session.ClientReferenceID
	out.AmountTotal = session.AmountTotal
	out.Currency = string(session.Currency)
	if session.Customer != nil {
		out.CustomerID = session.Customer.ID
	}

	return out, nil
}
