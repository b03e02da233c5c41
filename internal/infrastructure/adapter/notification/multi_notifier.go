package notification

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
)

// MultiNotifier fans an alert out to every wrapped notifier.
// All notifiers are attempted; their errors are joined.
type MultiNotifier struct {
	notifiers []notification.Notifier
}

// NewMultiNotifier wraps notifiers, skipping nils
func NewMultiNotifier(notifiers ...notification.Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Notify delivers txn to all notifiers
func (m *MultiNotifier) Notify(ctx context.Context, txn *entity.Transaction) error {
	var errList []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, txn); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

var _ notification.Notifier = (*MultiNotifier)(nil)
