package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// BilledIndex maintains the taskId -> invoiceId mapping in a Redis hash per
// user. Key format: billed:<user_id>
type BilledIndex struct {
	client *redis.Client
}

// NewBilledIndex creates a BilledIndex wrapping the given Redis client.
func NewBilledIndex(client *redis.Client) *BilledIndex {
	return &BilledIndex{client: client}
}

// MarkBilled records the invoice's task set as billed.
func (i *BilledIndex) MarkBilled(ctx context.Context, userID, invoiceID string, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	pairs := make([]interface{}, 0, len(taskIDs)*2)
	for _, taskID := range taskIDs {
		pairs = append(pairs, taskID, invoiceID)
	}
	if err := i.client.HSet(ctx, i.key(userID), pairs...).Err(); err != nil {
		return fmt.Errorf("mark billed: %w", err)
	}
	return nil
}

// Billed returns the full taskId -> invoiceId mapping for one user.
func (i *BilledIndex) Billed(ctx context.Context, userID string) (map[string]string, error) {
	m, err := i.client.HGetAll(ctx, i.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read billed index: %w", err)
	}
	return m, nil
}

// Rebuild replaces the user's index from the full invoice set. Runs as a
// pipeline so readers never observe a half-built hash for long.
func (i *BilledIndex) Rebuild(ctx context.Context, userID string, invoices []*domain.Invoice) error {
	pipe := i.client.TxPipeline()
	pipe.Del(ctx, i.key(userID))
	for _, inv := range invoices {
		for _, taskID := range inv.TaskIDs {
			pipe.HSet(ctx, i.key(userID), taskID, inv.ID)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild billed index: %w", err)
	}
	return nil
}

func (i *BilledIndex) key(userID string) string {
	return fmt.Sprintf("billed:%s", userID)
}
