package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	webhookEventPrefix = "webhook:event:"
	webhookEventTTL    = 48 * time.Hour
)

// EventDedup records processed webhook event ids so provider retries of an
// already-handled event are acknowledged without a second side effect.
type EventDedup struct {
	client *Client
}

// NewEventDedup creates a new webhook dedup store.
func NewEventDedup(client *Client) *EventDedup {
	return &EventDedup{client: client}
}

// MarkProcessed records the event id. Returns true when this call was the
// first to record it.
func (d *EventDedup) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf("%s%s", webhookEventPrefix, eventID)
	first, err := d.client.rdb.SetNX(ctx, key, 1, webhookEventTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark event processed: %w", err)
	}
	return first, nil
}

// Unmark releases a recorded event id so a provider retry can claim it again
// after a reconciliation that did not complete.
func (d *EventDedup) Unmark(ctx context.Context, eventID string) error {
	key := fmt.Sprintf("%s%s", webhookEventPrefix, eventID)
	if err := d.client.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to unmark event: %w", err)
	}
	return nil
}
