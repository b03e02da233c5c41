package notification

import (
	"encoding/json"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// FormatAlert renders the user-facing alert line, e.g. "-₹40.00 at SAINATHCANTEEN"
func FormatAlert(txn *entity.Transaction) string {
	return entity.FormatSignedAmount(txn.Direction, txn.Amount) + " at " + txn.Merchant
}

// Alert is the published form of an accepted transaction
type Alert struct {
	TransactionID string `json:"transaction_id"`
	Text          string `json:"text"`
	Amount        string `json:"amount"`
	Direction     string `json:"direction"`
	Category      string `json:"category"`
	Merchant      string `json:"merchant"`
	Account       string `json:"account"`
	ReferenceID   string `json:"reference_id"`
	OccurredAt    int64  `json:"occurred_at"`
}

// NewAlert builds the alert for txn
func NewAlert(txn *entity.Transaction) Alert {
	return Alert{
		TransactionID: txn.ID,
		Text:          FormatAlert(txn),
		Amount:        entity.FormatAmount(txn.Amount),
		Direction:     string(txn.Direction),
		Category:      string(txn.Category),
		Merchant:      txn.Merchant,
		Account:       string(txn.Account),
		ReferenceID:   txn.Reference(),
		OccurredAt:    txn.OccurredAt,
	}
}

// EncodeAlert returns the JSON payload and message attributes for txn
func EncodeAlert(txn *entity.Transaction) ([]byte, map[string]string, error) {
	data, err := json.Marshal(NewAlert(txn))
	if err != nil {
		return nil, nil, err
	}
	attrs := map[string]string{
		"transaction_id": txn.ID,
		"direction":      string(txn.Direction),
		"account":        string(txn.Account),
	}
	return data, attrs, nil
}
