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

// CredentialRepository stores OAuth grants, one per provider.
type CredentialRepository struct {
	coll *mongo.Collection
}

// NewCredentialRepository creates a new credential repository.
func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(collCredentials)}
}

// Upsert stores or replaces the grant for the credential's provider.
func (r *CredentialRepository) Upsert(ctx context.Context, c *domain.IntegrationCredential) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"provider": c.Provider},
		bson.M{
			"$set": bson.M{
				"owner_id":      c.OwnerID,
				"scope":         c.Scope,
				"access_token":  c.AccessToken,
				"refresh_token": c.RefreshToken,
				"expiry":        c.Expiry,
				"updated_at":    c.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"_id":        c.ID,
				"created_at": c.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert credential: %w", err)
	}
	return nil
}

// Get returns the grant for a provider, or (nil, nil) when none exists.
func (r *CredentialRepository) Get(ctx context.Context, provider string) (*domain.IntegrationCredential, error) {
	var c domain.IntegrationCredential
	err := r.coll.FindOne(ctx, bson.M{"provider": provider}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return &c, nil
}

// List returns all stored grants.
func (r *CredentialRepository) List(ctx context.Context) ([]domain.IntegrationCredential, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.IntegrationCredential
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode credentials: %w", err)
	}
	return out, nil
}

// Delete removes the grant for a provider.
func (r *CredentialRepository) Delete(ctx context.Context, provider string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"provider": provider})
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
