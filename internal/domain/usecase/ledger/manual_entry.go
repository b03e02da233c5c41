package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

// RecordManual stores a transaction typed in by the user. Manual entries get a
// random identity because they have no source message to derive one from.
func (s *Service) RecordManual(ctx context.Context, req usecase.ManualEntryRequest) (*entity.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err.Error())
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	occurredAt := req.OccurredAt
	if occurredAt == 0 {
		occurredAt = s.timeProvider.Now().UnixMilli()
	}

	txn, err := entity.NewManualTransaction(uuid.New().String(), entity.ManualEntry{
		Amount:      amount,
		Direction:   entity.Direction(req.Direction),
		Merchant:    req.Merchant,
		Description: req.Description,
		OccurredAt:  occurredAt,
		Account:     entity.Account(req.Account),
	})
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Upsert(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to store manual transaction: %w", err)
	}

	s.logger.Info("Manual transaction recorded", map[string]any{
		"transaction_id": txn.ID,
		"direction":      string(txn.Direction),
		"account":        string(txn.Account),
	})
	return txn, nil
}
