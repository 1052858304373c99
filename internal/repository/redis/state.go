package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	oauthStatePrefix = "oauth:state:"
	oauthStateTTL    = 10 * time.Minute
)

// StateStore holds short-lived OAuth state nonces so the callback can bind a
// returning grant to the admin who initiated it.
type StateStore struct {
	client *Client
}

// NewStateStore creates a new OAuth state store.
func NewStateStore(client *Client) *StateStore {
	return &StateStore{client: client}
}

// Put stores a state nonce mapped to the initiating subject id.
func (s *StateStore) Put(ctx context.Context, state, subjectID string) error {
	key := fmt.Sprintf("%s%s", oauthStatePrefix, state)
	return s.client.rdb.Set(ctx, key, subjectID, oauthStateTTL).Err()
}

// Take consumes a state nonce, returning the subject id it was bound to.
// A nonce can be taken once; a second take reports a miss.
func (s *StateStore) Take(ctx context.Context, state string) (string, bool, error) {
	key := fmt.Sprintf("%s%s", oauthStatePrefix, state)
	subjectID, err := s.client.rdb.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to take oauth state: %w", err)
	}
	return subjectID, true, nil
}
