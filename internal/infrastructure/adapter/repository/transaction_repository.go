package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	retryConfig     database.RetryConfig
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		retryConfig:     database.DefaultRetryConfig(),
	}
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// entityToModel stores the effective reference so generated ones are searchable
func entityToModel(transaction *entity.Transaction) model.Transaction {
	reference := transaction.Reference()
	return model.Transaction{
		ID:           transaction.ID,
		Amount:       transaction.Amount,
		Direction:    string(transaction.Direction),
		Category:     string(transaction.Category),
		Merchant:     transaction.Merchant,
		Description:  transaction.Description,
		OccurredAt:   transaction.OccurredAt,
		ReferenceID:  &reference,
		AutoCaptured: transaction.AutoCaptured,
		Account:      string(transaction.Account),
	}
}

func modelToEntity(m *model.Transaction) *entity.Transaction {
	referenceID := m.ReferenceID
	if referenceID != nil && (*referenceID == "" || *referenceID == entity.GeneratedReferencePrefix+m.ID) {
		referenceID = nil
	}
	return &entity.Transaction{
		ID:           m.ID,
		Amount:       m.Amount,
		Direction:    entity.Direction(m.Direction),
		Category:     entity.Category(m.Category),
		Merchant:     m.Merchant,
		Description:  m.Description,
		OccurredAt:   m.OccurredAt,
		ReferenceID:  referenceID,
		AutoCaptured: m.AutoCaptured,
		Account:      entity.Account(m.Account),
	}
}

// Upsert inserts the transaction or overwrites the row with the same ID.
// created_at survives the overwrite.
func (r *TransactionRepository) Upsert(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Upserting transaction", map[string]any{
		"transaction_id": transaction.ID,
		"reference_id":   transaction.Reference(),
	})

	row := entityToModel(transaction)
	err := database.RetryOnTransientError(ctx, r.retryConfig, func() error {
		return r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&row).Error
	}, r.logger)

	if err != nil {
		r.logger.Error("Failed to upsert transaction", map[string]any{
			"transaction_id": transaction.ID,
			"error":          err.Error(),
		})
		return r.errorClassifier.ToDomain(err, "upsert")
	}

	return nil
}

// Exists checks if a transaction with the given ID is stored
func (r *TransactionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Count(&count)

	if result.Error != nil {
		r.logger.Error("Failed to check transaction existence", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return false, r.errorClassifier.ToDomain(result.Error, "exists")
	}

	return count > 0, nil
}

// GetByID retrieves a transaction by its identity
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var row model.Transaction
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&row)

	if result.Error != nil {
		return nil, r.errorClassifier.ToDomain(result.Error, "get by id")
	}

	return modelToEntity(&row), nil
}

// FindByReferenceID returns the newest transaction carrying referenceID
func (r *TransactionRepository) FindByReferenceID(ctx context.Context, referenceID string) (*entity.Transaction, error) {
	var row model.Transaction
	result := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("occurred_at DESC").
		First(&row)

	if result.Error != nil {
		// Rows written before generated references were stored only match by ID
		if errors.Is(result.Error, gorm.ErrRecordNotFound) && strings.HasPrefix(referenceID, entity.GeneratedReferencePrefix) {
			return r.GetByID(ctx, strings.TrimPrefix(referenceID, entity.GeneratedReferencePrefix))
		}
		return nil, r.errorClassifier.ToDomain(result.Error, "find by reference")
	}

	return modelToEntity(&row), nil
}

// List returns transactions matching query, newest first
func (r *TransactionRepository) List(ctx context.Context, query persistence.TransactionQuery) ([]*entity.Transaction, error) {
	tx := r.db.WithContext(ctx).Model(&model.Transaction{})

	if query.From != nil {
		tx = tx.Where("occurred_at >= ?", *query.From)
	}
	if query.To != nil {
		tx = tx.Where("occurred_at < ?", *query.To)
	}
	if query.Account != nil {
		tx = tx.Where("account = ?", string(*query.Account))
	}
	if query.Direction != nil {
		tx = tx.Where("direction = ?", string(*query.Direction))
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}
	if query.Offset > 0 {
		tx = tx.Offset(query.Offset)
	}

	var rows []model.Transaction
	if err := tx.Order("occurred_at DESC").Order("id").Find(&rows).Error; err != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"error": err.Error(),
		})
		return nil, r.errorClassifier.ToDomain(err, "list")
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, modelToEntity(&rows[i]))
	}
	return transactions, nil
}

type directionTotal struct {
	Direction string
	Total     decimal.Decimal
}

// SumByDirection totals income and expense for one account
func (r *TransactionRepository) SumByDirection(ctx context.Context, account entity.Account) (entity.Totals, error) {
	var rows []directionTotal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("direction, COALESCE(SUM(amount), 0) AS total").
		Where("account = ?", string(account)).
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return entity.Totals{}, r.errorClassifier.ToDomain(err, "sum by direction")
	}

	totals := entity.Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		switch entity.Direction(row.Direction) {
		case entity.DirectionIncome:
			totals.Income = row.Total
		case entity.DirectionExpense:
			totals.Expense = row.Total
		}
	}
	return totals, nil
}

// Delete removes one transaction
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Transaction{})
	if result.Error != nil {
		return r.errorClassifier.ToDomain(result.Error, "delete")
	}
	if result.RowsAffected == 0 {
		return r.errorClassifier.ToDomain(gorm.ErrRecordNotFound, "delete")
	}

	r.logger.Debug("Transaction deleted", map[string]any{
		"transaction_id": id,
	})
	return nil
}

// DeleteAll removes every transaction
func (r *TransactionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.Transaction{})
	if result.Error != nil {
		return 0, r.errorClassifier.ToDomain(result.Error, "delete all")
	}
	return result.RowsAffected, nil
}
