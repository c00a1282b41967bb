package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ayursutra/utils"

	"github.com/go-redis/redis/v8"
)

// RedisResendGate enforces the resend cooldown with a keyed TTL entry.
type RedisResendGate struct {
	client   *redis.Client
	interval time.Duration
}

func NewRedisResendGate(client *redis.Client) *RedisResendGate {
	return &RedisResendGate{client: client, interval: utils.ResendInterval}
}

func (g *RedisResendGate) Acquire(ctx context.Context, key string) (time.Duration, error) {
	ok, err := g.client.SetNX(ctx, utils.ResendGatePrefix+key, "1", g.interval).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to acquire resend gate: %w", err)
	}
	if ok {
		return 0, nil
	}
	ttl, err := g.client.TTL(ctx, utils.ResendGatePrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read resend gate: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// MemoryResendGate is an in-process gate with the same semantics, used where
// Redis is unavailable (single-instance deployments, tests). The clock is
// injectable so the window is deterministic under test.
type MemoryResendGate struct {
	mu       sync.Mutex
	deadline map[string]time.Time
	interval time.Duration
	now      func() time.Time
}

func NewMemoryResendGate() *MemoryResendGate {
	return &MemoryResendGate{
		deadline: make(map[string]time.Time),
		interval: utils.ResendInterval,
		now:      time.Now,
	}
}

func (g *MemoryResendGate) Acquire(_ context.Context, key string) (time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if until, ok := g.deadline[key]; ok && until.After(now) {
		return until.Sub(now), nil
	}
	g.deadline[key] = now.Add(g.interval)
	return 0, nil
}
