package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beamcollective/portal-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository stores profile documents. The role field here is the source
// of truth for authorization; token claims are derived from it at issue time.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{coll: db.Collection(collUsers)}
}

// Get returns a profile by uid, or (nil, nil) when absent.
func (r *UserRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	var u domain.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// SetRole updates the profile's role. Returns domain.ErrNotFound when no
// profile exists for the uid.
func (r *UserRepository) SetRole(ctx context.Context, uid string, role domain.Role) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
