package domain

import (
	"context"
	"time"
)

// RequestStatus is the review state of an intake request. Transitions out of
// pending happen through administrative review, not the public API.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDeclined RequestStatus = "declined"
)

// AreaID identifies an organizational area a staff applicant can select.
type AreaID string

const (
	AreaConcerts      AreaID = "concerts"
	AreaEducation     AreaID = "education"
	AreaCommunication AreaID = "communication"
	AreaFundraising   AreaID = "fundraising"
	AreaOperations    AreaID = "operations"
)

// ValidAreaID reports whether id belongs to the closed area set.
func ValidAreaID(id AreaID) bool {
	switch id {
	case AreaConcerts, AreaEducation, AreaCommunication, AreaFundraising, AreaOperations:
		return true
	}
	return false
}

// AreaSelection is one area a staff applicant wants to join, with the roles
// they are applying for within it.
type AreaSelection struct {
	AreaID     AreaID   `json:"area_id" bson:"area_id"`
	AreaTitle  string   `json:"area_title" bson:"area_title"`
	RoleIDs    []string `json:"role_ids" bson:"role_ids"`
	RoleTitles []string `json:"role_titles" bson:"role_titles"`
	Intent     string   `json:"intent,omitempty" bson:"intent,omitempty"`
}

// StaffRequest is a persisted admin/staff join request.
type StaffRequest struct {
	ID         string          `json:"id" bson:"_id"`
	UserID     string          `json:"user_id" bson:"user_id"`
	Selections []AreaSelection `json:"selections" bson:"selections"`
	Status     RequestStatus   `json:"status" bson:"status"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" bson:"updated_at"`
}

// StaffRequestCreate is the submission payload before structural validation.
type StaffRequestCreate struct {
	Selections []AreaSelection `json:"selections"`
}

// BookingKind distinguishes the two booking request shapes.
type BookingKind string

const (
	BookingKindEvent     BookingKind = "event"
	BookingKindCommunity BookingKind = "community"
)

// BookingRequest is a persisted booking or community-booking request. Which
// target fields are set depends on the kind.
type BookingRequest struct {
	ID              string        `json:"id" bson:"_id"`
	UserID          string        `json:"user_id" bson:"user_id"`
	Kind            BookingKind   `json:"kind" bson:"kind"`
	Date            string        `json:"date,omitempty" bson:"date,omitempty"`
	Location        string        `json:"location,omitempty" bson:"location,omitempty"`
	Instrumentation string        `json:"instrumentation,omitempty" bson:"instrumentation,omitempty"`
	OrchestraID     string        `json:"orchestra_id,omitempty" bson:"orchestra_id,omitempty"`
	OrchestraName   string        `json:"orchestra_name,omitempty" bson:"orchestra_name,omitempty"`
	Instrument      string        `json:"instrument,omitempty" bson:"instrument,omitempty"`
	Status          RequestStatus `json:"status" bson:"status"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
}

// BookingRequestCreate is the event booking payload.
type BookingRequestCreate struct {
	Date            string `json:"date" validate:"required,max=64"`
	Location        string `json:"location" validate:"required,max=255"`
	Instrumentation string `json:"instrumentation" validate:"required,max=255"`
}

// CommunityBookingCreate is the community booking payload.
type CommunityBookingCreate struct {
	OrchestraID   string `json:"orchestra_id" validate:"required,max=128"`
	OrchestraName string `json:"orchestra_name" validate:"required,max=255"`
	Instrument    string `json:"instrument" validate:"required,max=128"`
}

// IntakeRepository persists intake requests.
type IntakeRepository interface {
	CreateStaffRequest(ctx context.Context, r *StaffRequest) error
	CreateBookingRequest(ctx context.Context, r *BookingRequest) error
	ListStaffRequests(ctx context.Context, status RequestStatus, limit int) ([]StaffRequest, error)
}
