package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// TimerStore persists elapsed-time tracker state as JSON in Redis, one key
// per user. Key format: timer:<user_id>
//
// No TTL: a timer left running over a weekend must still be there on Monday.
type TimerStore struct {
	client *redis.Client
}

// NewTimerStore creates a TimerStore wrapping the given Redis client.
func NewTimerStore(client *redis.Client) *TimerStore {
	return &TimerStore{client: client}
}

// Save writes the user's timer state.
func (s *TimerStore) Save(ctx context.Context, t *domain.TimerState) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode timer state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(t.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("save timer state: %w", err)
	}
	return nil
}

// Load reads the user's timer state. Absence maps to ErrTimerNotRunning.
func (s *TimerStore) Load(ctx context.Context, userID string) (*domain.TimerState, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTimerNotRunning
		}
		return nil, fmt.Errorf("load timer state: %w", err)
	}

	var t domain.TimerState
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode timer state: %w", err)
	}
	return &t, nil
}

// Clear removes the user's timer state.
func (s *TimerStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *TimerStore) key(userID string) string {
	return fmt.Sprintf("timer:%s", userID)
}
