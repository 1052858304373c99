package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RosterRepository answers membership queries against the musician roster.
type RosterRepository struct {
	coll *mongo.Collection
	// batchSize bounds each $in query; a store-level parameter, not a
	// business rule.
	batchSize int
}

// NewRosterRepository creates a roster repository with the store's batch
// query limit.
func NewRosterRepository(db *DB, batchSize int) *RosterRepository {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &RosterRepository{coll: db.Collection(collRoster), batchSize: batchSize}
}

// ExistingEmails partitions the identifiers into batches, issues one $in
// membership query per batch, and merges the results into a presence map.
func (r *RosterRepository) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	present := make(map[string]bool, len(emails))
	if len(emails) == 0 {
		return present, nil
	}

	for start := 0; start < len(emails); start += r.batchSize {
		end := start + r.batchSize
		if end > len(emails) {
			end = len(emails)
		}
		batch := emails[start:end]

		cursor, err := r.coll.Find(ctx, bson.M{"email": bson.M{"$in": batch}})
		if err != nil {
			return nil, fmt.Errorf("failed to query roster batch: %w", err)
		}

		var members []struct {
			Email string `bson:"email"`
		}
		if err := cursor.All(ctx, &members); err != nil {
			return nil, fmt.Errorf("failed to decode roster batch: %w", err)
		}
		for _, m := range members {
			present[m.Email] = true
		}
	}

	return present, nil
}
