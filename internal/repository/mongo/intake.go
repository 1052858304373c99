package mongo

import (
	"context"
	"fmt"

	"github.com/beamcollective/portal-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IntakeRepository persists staff join requests and booking requests.
type IntakeRepository struct {
	staff    *mongo.Collection
	bookings *mongo.Collection
}

// NewIntakeRepository creates a new intake repository.
func NewIntakeRepository(db *DB) *IntakeRepository {
	return &IntakeRepository{
		staff:    db.Collection(collStaffRequests),
		bookings: db.Collection(collBookings),
	}
}

// CreateStaffRequest inserts a validated staff join request.
func (r *IntakeRepository) CreateStaffRequest(ctx context.Context, req *domain.StaffRequest) error {
	if _, err := r.staff.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert staff request: %w", err)
	}
	return nil
}

// CreateBookingRequest inserts a booking or community-booking request.
func (r *IntakeRepository) CreateBookingRequest(ctx context.Context, req *domain.BookingRequest) error {
	if _, err := r.bookings.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert booking request: %w", err)
	}
	return nil
}

// ListStaffRequests returns staff requests for administrative review, newest
// first. An empty status lists all.
func (r *IntakeRepository) ListStaffRequests(ctx context.Context, status domain.RequestStatus, limit int) ([]domain.StaffRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.staff.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff requests: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.StaffRequest
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode staff requests: %w", err)
	}
	return out, nil
}
