package ingestion

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
)

// IdempotencyHandler tells new transactions apart from re-ingested ones
type IdempotencyHandler struct {
	transactionRepo persistence.TransactionRepository
	logger          coreport.Logger
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(transactionRepo persistence.TransactionRepository, logger coreport.Logger) *IdempotencyHandler {
	return &IdempotencyHandler{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CheckIdempotency reports whether a transaction with the same identity is stored.
// The reference lookup is advisory: the same bank reference under a different identity
// is logged, never blocked, because storage resolves duplicates by identity only.
func (h *IdempotencyHandler) CheckIdempotency(ctx context.Context, txn *entity.Transaction) (bool, error) {
	exists, err := h.transactionRepo.Exists(ctx, txn.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check if transaction exists: %w", err)
	}

	if !txn.HasReference() {
		return exists, nil
	}

	other, err := h.transactionRepo.FindByReferenceID(ctx, txn.Reference())
	switch {
	case err == nil && other.ID != txn.ID:
		h.logger.Warn("Reference already recorded under another transaction", map[string]any{
			"transaction_id":          txn.ID,
			"reference_id":            txn.Reference(),
			"existing_transaction_id": other.ID,
		})
	case err != nil && !errs.IsNotFoundError(err):
		h.logger.Warn("Reference lookup failed", map[string]any{
			"transaction_id": txn.ID,
			"reference_id":   txn.Reference(),
			"error":          err.Error(),
		})
	}

	return exists, nil
}
