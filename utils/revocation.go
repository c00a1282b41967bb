// File: utils/revocation.go
package utils

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RevokeToken records a session token's hash so it is refused until its
// natural expiry. Only the hash is stored, never the token itself.
func RevokeToken(client *redis.Client, token string) error {
	ctx := context.Background()
	key := RevokedTokenPrefix + HashToken(token)
	if err := client.Set(ctx, key, "1", SessionTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether the token's hash is on the revocation list.
func IsTokenRevoked(client *redis.Client, token string) (bool, error) {
	ctx := context.Background()
	n, err := client.Exists(ctx, RevokedTokenPrefix+HashToken(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
