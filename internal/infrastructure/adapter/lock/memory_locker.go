package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
)

// MemoryLocker is an in-process Locker for single-instance deployments
type MemoryLocker struct {
	mu           sync.Mutex
	held         map[string]memoryEntry
	timeProvider coreport.TimeProvider
	nextToken    uint64
}

type memoryEntry struct {
	token     uint64
	expiresAt time.Time
}

// NewMemoryLocker creates an empty in-process locker
func NewMemoryLocker(timeProvider coreport.TimeProvider) *MemoryLocker {
	return &MemoryLocker{
		held:         make(map[string]memoryEntry),
		timeProvider: timeProvider,
	}
}

// Obtain takes key unless an unexpired lease holds it
func (l *MemoryLocker) Obtain(_ context.Context, key string, ttl time.Duration) (coreport.Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeProvider.Now()
	if entry, ok := l.held[key]; ok && now.Before(entry.expiresAt) {
		return nil, fmt.Errorf("%w: %s", errs.ErrLockNotObtained, key)
	}

	l.nextToken++
	l.held[key] = memoryEntry{token: l.nextToken, expiresAt: now.Add(ttl)}
	return &memoryLease{locker: l, key: key, token: l.nextToken}, nil
}

type memoryLease struct {
	locker *MemoryLocker
	key    string
	token  uint64
}

// Release frees the key if this lease still owns it
func (m *memoryLease) Release(_ context.Context) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()

	entry, ok := m.locker.held[m.key]
	if !ok || entry.token != m.token {
		return fmt.Errorf("release lock %s: lock not held", m.key)
	}
	delete(m.locker.held, m.key)
	return nil
}

var _ coreport.Locker = (*MemoryLocker)(nil)
