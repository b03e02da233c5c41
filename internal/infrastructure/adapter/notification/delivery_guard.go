package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
)

// DeliveredKeyPrefix namespaces delivery markers in Redis
const DeliveredKeyPrefix = "sms-ledger:notified:"

// DeliveredKey returns the Redis key marking transactionID as announced
func DeliveredKey(transactionID string) string {
	return DeliveredKeyPrefix + transactionID
}

// RedisDeliveryGuard records announced transactions with SETNX so replicas share the record
type RedisDeliveryGuard struct {
	client redis.Cmdable
}

// NewRedisDeliveryGuard creates a guard on top of a go-redis client
func NewRedisDeliveryGuard(client redis.Cmdable) *RedisDeliveryGuard {
	return &RedisDeliveryGuard{client: client}
}

// Claim returns true if no alert for transactionID was recorded within ttl
func (g *RedisDeliveryGuard) Claim(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, DeliveredKey(transactionID), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim delivery of %s: %w", transactionID, err)
	}
	return ok, nil
}

// Release deletes the marker so the next Claim succeeds
func (g *RedisDeliveryGuard) Release(ctx context.Context, transactionID string) error {
	if err := g.client.Del(ctx, DeliveredKey(transactionID)).Err(); err != nil {
		return fmt.Errorf("release delivery of %s: %w", transactionID, err)
	}
	return nil
}

// MemoryDeliveryGuard is the in-process DeliveryGuard
type MemoryDeliveryGuard struct {
	mu           sync.Mutex
	claimed      map[string]time.Time
	timeProvider coreport.TimeProvider
}

// NewMemoryDeliveryGuard creates an empty in-process guard
func NewMemoryDeliveryGuard(timeProvider coreport.TimeProvider) *MemoryDeliveryGuard {
	return &MemoryDeliveryGuard{
		claimed:      make(map[string]time.Time),
		timeProvider: timeProvider,
	}
}

// Claim returns true if transactionID has no unexpired claim. Expired entries are pruned.
func (g *MemoryDeliveryGuard) Claim(_ context.Context, transactionID string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.timeProvider.Now()
	for id, expiresAt := range g.claimed {
		if !now.Before(expiresAt) {
			delete(g.claimed, id)
		}
	}

	if _, ok := g.claimed[transactionID]; ok {
		return false, nil
	}
	g.claimed[transactionID] = now.Add(ttl)
	return true, nil
}

// Release forgets the claim on transactionID
func (g *MemoryDeliveryGuard) Release(_ context.Context, transactionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.claimed, transactionID)
	return nil
}

var (
	_ notification.DeliveryGuard = (*RedisDeliveryGuard)(nil)
	_ notification.DeliveryGuard = (*MemoryDeliveryGuard)(nil)
)
