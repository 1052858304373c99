package handler

import (
	"io"
	"net/http"

	"github.com/beamcollective/portal-api/internal/api/middleware"
	"github.com/beamcollective/portal-api/internal/api/response"
	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/beamcollective/portal-api/internal/service"
)

// Webhook payloads are small; the cap guards against oversized bodies.
const maxWebhookBody = 64 << 10

// PaymentHandler handles checkout and webhook endpoints
type PaymentHandler struct {
	paymentService *service.PaymentService
	listLimit      int
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, listLimit int) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, listLimit: listLimit}
}

// CreateCheckout starts a subscription checkout session for the caller
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Unauthorized(w, domain.ReasonMissingToken, "unauthorized")
		return
	}

	session, err := h.paymentService.CreateCheckout(r.Context(), claims.UserID, claims.Email)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Created(w, session)
}

// Webhook receives provider completion notifications. The raw body is read
// unmodified so the signature check covers exactly the bytes sent.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "failed to read request body")
		return
	}

	if err := h.paymentService.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]string{"received": "true"})
}

// ListDonations handles administrative listing of reconciled donations
func (h *PaymentHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.paymentService.ListDonations(r.Context(), h.listLimit)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.OK(w, map[string]any{"donations": donations})
}
