package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
)

// MockLocker is a testify mock for core.Locker
type MockLocker struct {
	mock.Mock
}

// NewMockLocker creates a MockLocker that asserts its expectations on cleanup
func NewMockLocker(t *testing.T) *MockLocker {
	m := &MockLocker{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (core.Lock, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(core.Lock), args.Error(1)
}

// MockLock is a testify mock for core.Lock
type MockLock struct {
	mock.Mock
}

// NewMockLock creates a MockLock that asserts its expectations on cleanup
func NewMockLock(t *testing.T) *MockLock {
	m := &MockLock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
