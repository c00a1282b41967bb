package auth

import (
	"context"

	"ayursutra/utils"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore persists sign-in flow state in the auth cache.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Save(userID string, session utils.AuthSession) error {
	return utils.SaveAuthSession(s.client, userID, session)
}

func (s *RedisSessionStore) Get(userID string) (*utils.AuthSession, error) {
	return utils.GetAuthSession(s.client, userID)
}

func (s *RedisSessionStore) Delete(userID string) error {
	return utils.DeleteAuthSession(s.client, userID)
}

// RedisTokenRevoker keeps revoked token hashes in the auth cache.
type RedisTokenRevoker struct {
	client *redis.Client
}

func NewRedisTokenRevoker(client *redis.Client) *RedisTokenRevoker {
	return &RedisTokenRevoker{client: client}
}

func (r *RedisTokenRevoker) Revoke(_ context.Context, token string) error {
	return utils.RevokeToken(r.client, token)
}
