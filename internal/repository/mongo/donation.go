package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/beamcollective/portal-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DonationRepository persists donation records and the subject-to-customer
// mapping for the payment provider.
type DonationRepository struct {
	donations *mongo.Collection
	customers *mongo.Collection
}

// NewDonationRepository creates a new donation repository.
func NewDonationRepository(db *DB) *DonationRepository {
	return &DonationRepository{
		donations: db.Collection(collDonations),
		customers: db.Collection(collCustomers),
	}
}

// CreateDonation inserts a reconciled donation record.
func (r *DonationRepository) CreateDonation(ctx context.Context, d *domain.Donation) error {
	if _, err := r.donations.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("failed to insert donation: %w", err)
	}
	return nil
}

// ListDonations returns donations newest first.
func (r *DonationRepository) ListDonations(ctx context.Context, limit int) ([]domain.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.donations.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Donation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode donations: %w", err)
	}
	return out, nil
}

// GetCustomer returns the stored mapping for a subject, or (nil, nil).
func (r *DonationRepository) GetCustomer(ctx context.Context, subjectID string) (*domain.CustomerMapping, error) {
	var m domain.CustomerMapping
	err := r.customers.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer mapping: %w", err)
	}
	return &m, nil
}

// EnsureCustomer stores the mapping at most once per subject. $setOnInsert
// under an upsert makes the first writer win; every caller gets the winning
// mapping back, so concurrent checkout attempts converge on one customer id.
func (r *DonationRepository) EnsureCustomer(ctx context.Context, m *domain.CustomerMapping) (*domain.CustomerMapping, error) {
	var stored domain.CustomerMapping
	err := r.customers.FindOneAndUpdate(ctx,
		bson.M{"_id": m.SubjectID},
		bson.M{"$setOnInsert": bson.M{
			"customer_id": m.CustomerID,
			"created_at":  m.CreatedAt,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure customer mapping: %w", err)
	}
	return &stored, nil
}
