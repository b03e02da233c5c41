package dto

import (
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// TransactionResponse represents a stored transaction
type TransactionResponse struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	Direction    string `json:"direction"`
	Category     string `json:"category"`
	Merchant     string `json:"merchant"`
	Description  string `json:"description"`
	OccurredAt   int64  `json:"occurredAt"`
	ReferenceID  string `json:"referenceId"`
	AutoCaptured bool   `json:"autoCaptured"`
	Account      string `json:"account"`
}

// FromTransaction converts a domain transaction. The reference falls back to "GEN-" + id.
func FromTransaction(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.ID,
		Amount:       entity.FormatAmount(txn.Amount),
		Direction:    string(txn.Direction),
		Category:     string(txn.Category),
		Merchant:     txn.Merchant,
		Description:  txn.Description,
		OccurredAt:   txn.OccurredAt,
		ReferenceID:  txn.Reference(),
		AutoCaptured: txn.AutoCaptured,
		Account:      string(txn.Account),
	}
}

// TransactionListResponse wraps a page of transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// FromTransactions converts a list of domain transactions
func FromTransactions(transactions []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		items = append(items, FromTransaction(txn))
	}
	return TransactionListResponse{Transactions: items, Count: len(items)}
}

// DeleteAllResponse reports how many rows a clear removed
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}
