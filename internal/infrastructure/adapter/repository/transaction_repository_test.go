package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/logger"
)

func strPtr(s string) *string { return &s }

func newTestRepository(t *testing.T) *TransactionRepository {
	t.Helper()

	log := logger.NewNoopLogger()
	dbManager := database.NewTestDBManager(t, log)
	db := dbManager.Connect(t)
	dbManager.SetupTestDB(t)

	return NewTransactionRepository(db, log)
}

func sampleTransaction(id string, amount string, direction entity.Direction, account entity.Account, occurredAt int64) *entity.Transaction {
	return &entity.Transaction{
		ID:           id,
		Amount:       decimal.RequireFromString(amount),
		Direction:    direction,
		Category:     entity.CategoryFood,
		Merchant:     "SAINATHCANTEEN",
		Description:  "Sent Rs." + amount + " to SAINATHCANTEEN",
		OccurredAt:   occurredAt,
		AutoCaptured: true,
		Account:      account,
	}
}

func TestTransactionRepository_UpsertAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	txn := sampleTransaction("02c17e3b-82b4-3347-8833-87d28b33b950", "40.00", entity.DirectionExpense, entity.AccountMain, 1715500000000)
	txn.ReferenceID = strPtr("123")
	require.NoError(t, repo.Upsert(ctx, txn))

	exists, err := repo.Exists(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := repo.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, txn.Amount.Equal(stored.Amount))
	assert.Equal(t, "123", *stored.ReferenceID)
	assert.Equal(t, entity.AccountMain, stored.Account)

	// Same identity overwrites the row
	txn.Merchant = "CANTEEN"
	txn.Account = entity.AccountSecondary
	require.NoError(t, repo.Upsert(ctx, txn))

	stored, err = repo.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANTEEN", stored.Merchant)
	assert.Equal(t, entity.AccountSecondary, stored.Account)

	all, err := repo.List(ctx, persistence.TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTransactionRepository_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

	_, err = repo.FindByReferenceID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), errs.ErrTransactionNotFound)
}

func TestTransactionRepository_FindByReferenceIDReturnsNewest(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	older := sampleTransaction("a", "10.00", entity.DirectionExpense, entity.AccountMain, 1000)
	older.ReferenceID = strPtr("REF1")
	newer := sampleTransaction("b", "20.00", entity.DirectionExpense, entity.AccountMain, 2000)
	newer.ReferenceID = strPtr("REF1")
	require.NoError(t, repo.Upsert(ctx, older))
	require.NoError(t, repo.Upsert(ctx, newer))

	found, err := repo.FindByReferenceID(ctx, "REF1")
	require.NoError(t, err)
	assert.Equal(t, "b", found.ID)
}

func TestTransactionRepository_FindByGeneratedReference(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	txn := sampleTransaction("02c17e3b-82b4-3347-8833-87d28b33b950", "40.00", entity.DirectionExpense, entity.AccountMain, 1000)
	require.NoError(t, repo.Upsert(ctx, txn))

	found, err := repo.FindByReferenceID(ctx, txn.Reference())
	require.NoError(t, err)
	assert.Equal(t, txn.ID, found.ID)
	assert.False(t, found.HasReference())
	assert.Equal(t, "GEN-"+txn.ID, found.Reference())
}

func TestTransactionRepository_FindByGeneratedReferenceOnLegacyRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Row without a stored reference
	row := entityToModel(sampleTransaction("legacy-1", "15.00", entity.DirectionExpense, entity.AccountMain, 1000))
	row.ReferenceID = nil
	require.NoError(t, repo.db.WithContext(ctx).Create(&row).Error)

	found, err := repo.FindByReferenceID(ctx, "GEN-legacy-1")
	require.NoError(t, err)
	assert.Equal(t, "legacy-1", found.ID)

	_, err = repo.FindByReferenceID(ctx, "GEN-missing")
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func TestTransactionModelMapping_Reference(t *testing.T) {
	tests := []struct {
		name          string
		referenceID   *string
		wantStored    string
		wantReference *string
	}{
		{
			name:          "message reference kept",
			referenceID:   strPtr("412345678901"),
			wantStored:    "412345678901",
			wantReference: strPtr("412345678901"),
		},
		{
			name:        "missing reference stored as generated",
			referenceID: nil,
			wantStored:  "GEN-id-1",
		},
		{
			name:        "empty reference stored as generated",
			referenceID: strPtr(""),
			wantStored:  "GEN-id-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := sampleTransaction("id-1", "10.00", entity.DirectionExpense, entity.AccountMain, 1000)
			txn.ReferenceID = tt.referenceID

			row := entityToModel(txn)
			require.NotNil(t, row.ReferenceID)
			assert.Equal(t, tt.wantStored, *row.ReferenceID)

			back := modelToEntity(&row)
			assert.Equal(t, tt.wantReference, back.ReferenceID)
			assert.Equal(t, tt.wantStored, back.Reference())
		})
	}
}

func TestTransactionRepository_ListFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t1", "10.00", entity.DirectionExpense, entity.AccountMain, 1000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t2", "20.00", entity.DirectionIncome, entity.AccountMain, 2000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t3", "30.00", entity.DirectionExpense, entity.AccountSecondary, 3000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t4", "40.00", entity.DirectionExpense, entity.AccountMain, 4000)))

	all, err := repo.List(ctx, persistence.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"t4", "t3", "t2", "t1"}, ids(all))

	from, to := int64(1000), int64(4000)
	main := entity.AccountMain
	expense := entity.DirectionExpense
	filtered, err := repo.List(ctx, persistence.TransactionQuery{From: &from, To: &to, Account: &main, Direction: &expense})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids(filtered))

	page, err := repo.List(ctx, persistence.TransactionQuery{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, ids(page))
}

func TestTransactionRepository_SumByDirection(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	empty, err := repo.SumByDirection(ctx, entity.AccountMain)
	require.NoError(t, err)
	assert.True(t, empty.Income.IsZero())
	assert.True(t, empty.Expense.IsZero())

	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t1", "40.00", entity.DirectionExpense, entity.AccountMain, 1000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t2", "1234.50", entity.DirectionExpense, entity.AccountMain, 2000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t3", "66.00", entity.DirectionIncome, entity.AccountMain, 3000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t4", "500.00", entity.DirectionIncome, entity.AccountSecondary, 4000)))

	totals, err := repo.SumByDirection(ctx, entity.AccountMain)
	require.NoError(t, err)
	assert.Equal(t, "66.00", totals.Income.StringFixed(2))
	assert.Equal(t, "1274.50", totals.Expense.StringFixed(2))

	secondary, err := repo.SumByDirection(ctx, entity.AccountSecondary)
	require.NoError(t, err)
	assert.Equal(t, "500.00", secondary.Income.StringFixed(2))
	assert.True(t, secondary.Expense.IsZero())
}

func TestTransactionRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t1", "10.00", entity.DirectionExpense, entity.AccountMain, 1000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t2", "20.00", entity.DirectionExpense, entity.AccountMain, 2000)))
	require.NoError(t, repo.Upsert(ctx, sampleTransaction("t3", "30.00", entity.DirectionExpense, entity.AccountMain, 3000)))

	require.NoError(t, repo.Delete(ctx, "t1"))
	exists, err := repo.Exists(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.List(ctx, persistence.TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func ids(transactions []*entity.Transaction) []string {
	out := make([]string, 0, len(transactions))
	for _, txn := range transactions {
		out = append(out, txn.ID)
	}
	return out
}
