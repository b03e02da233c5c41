package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
)

// DefaultNotificationTTL bounds how long a delivered alert suppresses repeats
const DefaultNotificationTTL = 24 * time.Hour

// NotificationDispatcher announces stored transactions at most once per identity
type NotificationDispatcher struct {
	notifier notification.Notifier
	guard    notification.DeliveryGuard
	ttl      time.Duration
	logger   coreport.Logger
}

// NewNotificationDispatcher creates a dispatcher. A nil guard delivers every time.
func NewNotificationDispatcher(
	notifier notification.Notifier,
	guard notification.DeliveryGuard,
	ttl time.Duration,
	logger coreport.Logger,
) *NotificationDispatcher {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &NotificationDispatcher{
		notifier: notifier,
		guard:    guard,
		ttl:      ttl,
		logger:   logger,
	}
}

// Dispatch sends the alert for txn. It returns delivered=false without error
// when the alert was already sent within the guard ttl.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, txn *entity.Transaction) (bool, error) {
	claimed := false
	if d.guard != nil {
		ok, err := d.guard.Claim(ctx, txn.ID, d.ttl)
		claimed = ok && err == nil
		switch {
		case err != nil:
			// An unreachable guard must not swallow the alert
			d.logger.Warn("Delivery guard unavailable, sending anyway", map[string]any{
				"transaction_id": txn.ID,
				"error":          err.Error(),
			})
		case !ok:
			d.logger.Debug("Notification already delivered", map[string]any{
				"transaction_id": txn.ID,
			})
			return false, nil
		}
	}

	if err := d.notifier.Notify(ctx, txn); err != nil {
		d.logger.Error("Failed to deliver notification", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		// A failed delivery must not suppress the retry
		if claimed {
			if releaseErr := d.guard.Release(ctx, txn.ID); releaseErr != nil {
				d.logger.Warn("Failed to release delivery claim", map[string]any{
					"transaction_id": txn.ID,
					"error":          releaseErr.Error(),
				})
			}
		}
		return false, fmt.Errorf("%w: %v", errs.ErrNotificationFailed, err)
	}

	return true, nil
}
