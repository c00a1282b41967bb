// File: utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Auth flow statuses. The flow moves forward through these; "failed" is absorbing.
const (
	AuthStatusCodeRequested      = "code_requested"
	AuthStatusCodeEntered        = "code_entered"
	AuthStatusSessionEstablished = "session_established"
	AuthStatusRouted             = "routed"
	AuthStatusFailed             = "failed"
)

// AuthSession represents the progress of a sign-in flow. It is keyed by the
// provider-side user ID returned at token issuance and carries everything the
// verify step needs besides the code itself.
type AuthSession struct {
	UserID          string    `json:"userId"`
	Identifier      string    `json:"identifier"`
	Channel         string    `json:"channel"` // "phone" or "email"
	Role            string    `json:"role"`    // "user" or "clinic"
	SecretRequestID string    `json:"secretRequestId"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// SaveAuthSession saves the sign-in flow session in Redis with a TTL.
func SaveAuthSession(client *redis.Client, userID string, session AuthSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AuthSessionPrefix+userID, data, AuthSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the sign-in flow session from Redis.
// Returns (nil, nil) when no session exists for the user ID.
func GetAuthSession(client *redis.Client, userID string) (*AuthSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AuthSessionPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes a sign-in flow session from Redis.
func DeleteAuthSession(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthSessionPrefix+userID).Err()
}
