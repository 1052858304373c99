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

// ProspectRepository persists invitation records.
type ProspectRepository struct {
	coll *mongo.Collection
}

// NewProspectRepository creates a new prospect repository.
func NewProspectRepository(db *DB) *ProspectRepository {
	return &ProspectRepository{coll: db.Collection(collProspects)}
}

// Create inserts a new invitation record.
func (r *ProspectRepository) Create(ctx context.Context, p *domain.Prospect) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert prospect: %w", err)
	}
	return nil
}

// Get returns the prospect by id, or (nil, nil) when absent.
func (r *ProspectRepository) Get(ctx context.Context, id string) (*domain.Prospect, error) {
	var p domain.Prospect
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prospect: %w", err)
	}
	return &p, nil
}

// Transition applies the pending-to-terminal state change as a single
// conditional update filtered on the pending status. Two concurrent calls
// can match the filter at most once, which closes the double-confirmation
// race without a transaction. Returns (nil, nil) when no pending record
// matched; the caller disambiguates absent vs already-responded.
func (r *ProspectRepository) Transition(ctx context.Context, id string, t domain.ProspectTransition) (*domain.Prospect, error) {
	set := bson.M{"status": t.Status}
	switch t.Status {
	case domain.ProspectStatusConfirmed:
		set["confirmed_at"] = t.At
		if t.ResponderEmail != "" {
			set["responder_email"] = t.ResponderEmail
		}
	case domain.ProspectStatusDeclined:
		set["declined_at"] = t.At
	}

	var p domain.Prospect
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": domain.ProspectStatusPending},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition prospect: %w", err)
	}
	return &p, nil
}
