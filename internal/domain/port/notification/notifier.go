package notification

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// Notifier announces an accepted transaction to the user
type Notifier interface {
	Notify(ctx context.Context, transaction *entity.Transaction) error
}

// DeliveryGuard suppresses repeat alerts for a transaction that is re-ingested
type DeliveryGuard interface {
	// Claim returns true the first time an ID is seen within ttl
	Claim(ctx context.Context, transactionID string, ttl time.Duration) (bool, error)
	// Release drops a claim whose alert was never delivered
	Release(ctx context.Context, transactionID string) error
}
