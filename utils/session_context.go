// File: utils/session_context.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// SessionContext is the per-user denormalized cache the views depend on: which
// clinic the session owns and the contact email collected at first booking.
// It must be cleared on sign-out.
type SessionContext struct {
	ClinicID     string `json:"clinicId,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// SessionContextStore persists session contexts in Redis, keyed by user ID.
type SessionContextStore struct {
	client *redis.Client
}

func NewSessionContextStore(client *redis.Client) *SessionContextStore {
	return &SessionContextStore{client: client}
}

// Load retrieves the session context for a user. A missing entry yields an
// empty context, not an error.
func (s *SessionContextStore) Load(ctx context.Context, userID string) (*SessionContext, error) {
	data, err := s.client.Get(ctx, SessionContextPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return &SessionContext{}, nil
		}
		return nil, fmt.Errorf("failed to load session context: %w", err)
	}
	var sc SessionContext
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session context: %w", err)
	}
	return &sc, nil
}

// Save persists the session context for a user.
func (s *SessionContextStore) Save(ctx context.Context, userID string, sc SessionContext) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal session context: %w", err)
	}
	if err := s.client.Set(ctx, SessionContextPrefix+userID, data, SessionContextTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session context: %w", err)
	}
	return nil
}

// Clear removes the session context for a user. Required postcondition of sign-out.
func (s *SessionContextStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, SessionContextPrefix+userID).Err()
}
