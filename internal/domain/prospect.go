package domain

import (
	"context"
	"time"
)

// ProspectStatus is the invitation lifecycle state. Pending is the only
// non-terminal state; confirmed and declined admit no further transition.
type ProspectStatus string

const (
	ProspectStatusPending   ProspectStatus = "pending"
	ProspectStatusConfirmed ProspectStatus = "confirmed"
	ProspectStatusDeclined  ProspectStatus = "declined"
)

// ValidDecision reports whether s is an acceptable confirmation decision.
func (s ProspectStatus) ValidDecision() bool {
	return s == ProspectStatusConfirmed || s == ProspectStatusDeclined
}

// InvitationTTL is how long an invitation stays redeemable.
const InvitationTTL = 30 * 24 * time.Hour

// Prospect is an invited-but-unconfirmed participant record. The token is
// the sole credential for reading and transitioning the record.
type Prospect struct {
	ID             string         `json:"id" bson:"_id"`
	Name           string         `json:"name" bson:"name"`
	Email          string         `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string         `json:"phone,omitempty" bson:"phone,omitempty"`
	Instrument     string         `json:"instrument" bson:"instrument"`
	ProjectID      string         `json:"project_id" bson:"project_id"`
	Status         ProspectStatus `json:"status" bson:"status"`
	Token          string         `json:"-" bson:"token"`
	InvitedBy      string         `json:"invited_by" bson:"invited_by"`
	InvitedAt      time.Time      `json:"invited_at" bson:"invited_at"`
	ExpiresAt      time.Time      `json:"expires_at" bson:"expires_at"`
	ConfirmedAt    *time.Time     `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	DeclinedAt     *time.Time     `json:"declined_at,omitempty" bson:"declined_at,omitempty"`
	ResponderEmail string         `json:"responder_email,omitempty" bson:"responder_email,omitempty"`
}

// Expired reports whether the invitation is past its validity window.
func (p *Prospect) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// ProspectCreate is the invitation creation payload.
type ProspectCreate struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,max=64"`
	Instrument string `json:"instrument" validate:"required,max=128"`
	ProjectID  string `json:"project_id" validate:"required,max=128"`
}

// ProspectConfirm is the confirm/decline payload. The token is the
// credential; no bearer auth applies to this operation.
type ProspectConfirm struct {
	ProspectID     string `json:"prospect_id" validate:"required"`
	Token          string `json:"token" validate:"required"`
	Decision       string `json:"decision" validate:"required"`
	ResponderEmail string `json:"responder_email,omitempty" validate:"omitempty,email"`
}

// ProspectTransition carries the fields stamped by a successful transition.
type ProspectTransition struct {
	Status         ProspectStatus
	At             time.Time
	ResponderEmail string
}

// ProspectRepository persists invitation records. Transition must be a
// conditional write filtered on the pending status: it returns (nil, nil)
// when no pending record matched, leaving disambiguation to the caller.
type ProspectRepository interface {
	Create(ctx context.Context, p *Prospect) error
	Get(ctx context.Context, id string) (*Prospect, error)
	Transition(ctx context.Context, id string, t ProspectTransition) (*Prospect, error)
}
