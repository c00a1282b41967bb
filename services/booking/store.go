package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ayursutra/models"

	"github.com/go-redis/redis/v8"
)

const (
	selectionPrefix = "selection:"
	selectionTTL    = 7 * 24 * time.Hour
)

// SelectionStore keeps each visitor's in-progress clinic and therapy choice,
// plus their accumulated bookings.
type SelectionStore interface {
	Load(ctx context.Context, userID string) (*models.SelectionSession, error)
	Save(ctx context.Context, userID string, session models.SelectionSession) error
	Clear(ctx context.Context, userID string) error
}

// RedisSelectionStore serializes the selection session as JSON under a
// per-user key.
type RedisSelectionStore struct {
	client *redis.Client
}

func NewRedisSelectionStore(client *redis.Client) *RedisSelectionStore {
	return &RedisSelectionStore{client: client}
}

func (s *RedisSelectionStore) Load(ctx context.Context, userID string) (*models.SelectionSession, error) {
	data, err := s.client.Get(ctx, selectionPrefix+userID).Result()
	if err == redis.Nil {
		return &models.SelectionSession{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selection session: %w", err)
	}
	var session models.SelectionSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode selection session: %w", err)
	}
	return &session, nil
}

func (s *RedisSelectionStore) Save(ctx context.Context, userID string, session models.SelectionSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode selection session: %w", err)
	}
	if err := s.client.Set(ctx, selectionPrefix+userID, data, selectionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save selection session: %w", err)
	}
	return nil
}

func (s *RedisSelectionStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, selectionPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to clear selection session: %w", err)
	}
	return nil
}
