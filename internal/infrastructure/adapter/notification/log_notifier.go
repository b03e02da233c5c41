package notification

import (
	"context"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
)

// LogNotifier writes alerts to the structured log
type LogNotifier struct {
	logger coreport.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger coreport.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the alert text at info level
func (n *LogNotifier) Notify(_ context.Context, txn *entity.Transaction) error {
	n.logger.Info("Transaction alert", map[string]any{
		"transaction_id": txn.ID,
		"reference_id":   txn.Reference(),
		"category":       txn.Category,
		"account":        txn.Account,
		"text":           FormatAlert(txn),
	})
	return nil
}

var _ notification.Notifier = (*LogNotifier)(nil)
