package ledger

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/report"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

// Service implements the read models and user actions over stored transactions
type Service struct {
	transactionRepo persistence.TransactionRepository
	reportWriter    report.Writer
	archive         report.Archive
	timeProvider    coreport.TimeProvider
	validate        *validator.Validate
	logger          coreport.Logger
}

var _ usecase.LedgerUseCase = (*Service)(nil)

// NewLedgerService creates a ledger service. archive may be nil when uploads are disabled.
func NewLedgerService(
	transactionRepo persistence.TransactionRepository,
	reportWriter report.Writer,
	archive report.Archive,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		reportWriter:    reportWriter,
		archive:         archive,
		timeProvider:    timeProvider,
		validate:        validator.New(),
		logger:          logger,
	}
}

// ListTransactions returns matching transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, query persistence.TransactionQuery) ([]*entity.Transaction, error) {
	if query.From != nil && query.To != nil && *query.From > *query.To {
		return nil, fmt.Errorf("%w: from must not be after to", errs.ErrInvalidRequest)
	}
	if query.Limit < 0 || query.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", errs.ErrInvalidRequest)
	}

	transactions, err := s.transactionRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// GetTransaction returns one transaction by identity
func (s *Service) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	if id == "" {
		return nil, errs.ErrInvalidTransactionID
	}
	return s.transactionRepo.GetByID(ctx, id)
}

// FindByReference returns the latest transaction carrying a reference
func (s *Service) FindByReference(ctx context.Context, referenceID string) (*entity.Transaction, error) {
	if referenceID == "" {
		return nil, fmt.Errorf("%w: reference is required", errs.ErrInvalidRequest)
	}
	return s.transactionRepo.FindByReferenceID(ctx, referenceID)
}

// DeleteTransaction removes one transaction
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrInvalidTransactionID
	}
	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", map[string]any{"transaction_id": id})
	return nil
}

// ClearAll removes every stored transaction
func (s *Service) ClearAll(ctx context.Context) (int64, error) {
	deleted, err := s.transactionRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear transactions: %w", err)
	}

	s.logger.Warn("All transactions cleared", map[string]any{"deleted": deleted})
	return deleted, nil
}
