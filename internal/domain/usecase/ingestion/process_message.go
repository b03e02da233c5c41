package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

// MessageProcessor runs one message through validation, parsing and storage
type MessageProcessor struct {
	parser             usecase.MessageParser
	validator          *MessageValidator
	idempotencyHandler *IdempotencyHandler
	transactionRepo    persistence.TransactionRepository
	logger             coreport.Logger
}

// NewMessageProcessor creates a new MessageProcessor
func NewMessageProcessor(
	parser usecase.MessageParser,
	validator *MessageValidator,
	idempotencyHandler *IdempotencyHandler,
	transactionRepo persistence.TransactionRepository,
	logger coreport.Logger,
) *MessageProcessor {
	return &MessageProcessor{
		parser:             parser,
		validator:          validator,
		idempotencyHandler: idempotencyHandler,
		transactionRepo:    transactionRepo,
		logger:             logger,
	}
}

// Process handles one message:
// 1. Validates the message shape
// 2. Parses it, returning a rejected outcome for non-transactions
// 3. Checks whether the identity is already stored
// 4. Upserts the transaction
func (p *MessageProcessor) Process(ctx context.Context, msg entity.Message) (*usecase.IngestResult, error) {
	if err := p.validator.ValidateMessage(msg); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	txn, err := p.parser.Parse(msg)
	if err != nil {
		if !errs.IsRejection(err) {
			return nil, err
		}
		p.logger.Debug("Message rejected", rejectionFields(err, msg))
		return &usecase.IngestResult{
			Outcome:      usecase.OutcomeRejected,
			RejectReason: err.Error(),
		}, nil
	}

	exists, err := p.idempotencyHandler.CheckIdempotency(ctx, txn)
	if err != nil {
		return nil, errs.NewIngestionError(txn.ID, txn.Reference(), "idempotency", err)
	}

	if err := p.transactionRepo.Upsert(ctx, txn); err != nil {
		return nil, errs.NewIngestionError(txn.ID, txn.Reference(), "store", err)
	}

	outcome := usecase.OutcomeStored
	if exists {
		outcome = usecase.OutcomeReplaced
	}

	p.logger.Info("Transaction ingested", map[string]any{
		"transaction_id": txn.ID,
		"reference_id":   txn.Reference(),
		"outcome":        string(outcome),
		"direction":      string(txn.Direction),
		"category":       string(txn.Category),
		"account":        string(txn.Account),
	})

	return &usecase.IngestResult{
		Outcome:     outcome,
		Transaction: txn,
	}, nil
}

func rejectionFields(err error, msg entity.Message) map[string]any {
	var rejection *errs.RejectionError
	if errors.As(err, &rejection) {
		return rejection.LogFields()
	}
	return map[string]any{
		"sender":      msg.Sender,
		"occurred_at": msg.OccurredAt,
		"reason":      err.Error(),
	}
}
