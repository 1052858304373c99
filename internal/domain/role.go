package domain

import (
	"context"
	"time"
)

// Role is the primary role tag attached to an authenticated identity.
type Role string

const (
	RoleBeamAdmin    Role = "beam_admin"
	RolePartnerAdmin Role = "partner_admin"
	RoleBoard        Role = "board"
	RoleMusician     Role = "musician"
	RoleSubscriber   Role = "subscriber"
	RoleAudience     Role = "audience"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBeamAdmin, RolePartnerAdmin, RoleBoard, RoleMusician, RoleSubscriber, RoleAudience:
		return true
	}
	return false
}

// Capability is a boolean flag mirroring a role, checked by the
// authorization gate before any gated write.
type Capability string

const (
	CapabilityAdmin      Capability = "admin"
	CapabilityBoard      Capability = "board"
	CapabilityMusician   Capability = "musician"
	CapabilitySubscriber Capability = "subscriber"
)

// Has reports whether the role carries the given capability. Admin roles
// imply every other capability.
func (r Role) Has(c Capability) bool {
	if r == RoleBeamAdmin || r == RolePartnerAdmin {
		return true
	}
	switch c {
	case CapabilityBoard:
		return r == RoleBoard
	case CapabilityMusician:
		return r == RoleMusician
	case CapabilitySubscriber:
		return r == RoleSubscriber
	}
	return false
}

// UserProfile is the stored profile document. The role field here is the
// source of truth; the role claim inside issued tokens is a derived cache.
type UserProfile struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Role      Role      `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SetRoleInput is the administrative set-role payload.
type SetRoleInput struct {
	UID  string `json:"uid" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// UserRepository stores profile documents.
type UserRepository interface {
	Get(ctx context.Context, uid string) (*UserProfile, error)
	SetRole(ctx context.Context, uid string, role Role) error
}
