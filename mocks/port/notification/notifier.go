package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// MockNotifier is a testify mock for notification.Notifier
type MockNotifier struct {
	mock.Mock
}

// NewMockNotifier creates a MockNotifier that asserts its expectations on cleanup
func NewMockNotifier(t *testing.T) *MockNotifier {
	m := &MockNotifier{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockNotifier) Notify(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

// MockDeliveryGuard is a testify mock for notification.DeliveryGuard
type MockDeliveryGuard struct {
	mock.Mock
}

// NewMockDeliveryGuard creates a MockDeliveryGuard that asserts its expectations on cleanup
func NewMockDeliveryGuard(t *testing.T) *MockDeliveryGuard {
	m := &MockDeliveryGuard{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDeliveryGuard) Claim(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, transactionID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryGuard) Release(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}
