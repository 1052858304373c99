package domain

import (
	"context"
	"time"
)

// Donation is a reconciled payment-completion record. Amount is the major
// currency unit derived from the provider's minor-unit total.
type Donation struct {
	ID          string    `json:"id" bson:"_id"`
	SubjectID   string    `json:"subject_id,omitempty" bson:"subject_id,omitempty"`
	SessionID   string    `json:"session_id" bson:"session_id"`
	CustomerID  string    `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	EventID     string    `json:"event_id" bson:"event_id"`
	AmountCents int64     `json:"amount_cents" bson:"amount_cents"`
	Amount      float64   `json:"amount" bson:"amount"`
	Currency    string    `json:"currency" bson:"currency"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// CustomerMapping links a portal subject to its payment-provider customer.
// Created at most once per subject.
type CustomerMapping struct {
	SubjectID  string    `json:"subject_id" bson:"_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// DonationRepository persists donations and the subject-to-customer mapping.
// EnsureCustomer must be an atomic get-or-create: when two callers race, both
// receive the mapping that won the insert.
type DonationRepository interface {
	CreateDonation(ctx context.Context, d *Donation) error
	ListDonations(ctx context.Context, limit int) ([]Donation, error)
	GetCustomer(ctx context.Context, subjectID string) (*CustomerMapping, error)
	EnsureCustomer(ctx context.Context, m *CustomerMapping) (*CustomerMapping, error)
}
