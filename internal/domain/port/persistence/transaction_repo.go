package persistence

import (
	"context"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// TransactionQuery narrows a transaction listing. Zero values disable a filter.
type TransactionQuery struct {
	From      *int64            // inclusive, epoch millis
	To        *int64            // exclusive, epoch millis
	Account   *entity.Account   // restrict to one account
	Direction *entity.Direction // restrict to income or expense
	Limit     int
	Offset    int
}

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Upsert inserts the transaction or replaces the stored row with the same ID
	// Re-ingesting a message therefore overwrites instead of duplicating
	//
	// Possible errors:
	// - ErrConstraintViolation: If a column constraint rejects the row
	// - ErrDatabaseConnection: If database connection fails
	Upsert(ctx context.Context, transaction *entity.Transaction) error

	// Exists checks if a transaction with the given ID is stored
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Exists(ctx context.Context, id string) (bool, error)

	// GetByID retrieves a transaction by its identity
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByReferenceID returns the most recent transaction carrying the reference
	// Used for secondary duplicate checks
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the given reference
	// - ErrDatabaseConnection: If database connection fails
	FindByReferenceID(ctx context.Context, referenceID string) (*entity.Transaction, error)

	// List returns transactions matching the query ordered by occurred_at descending
	List(ctx context.Context, query TransactionQuery) ([]*entity.Transaction, error)

	// SumByDirection totals income and expense for one account
	SumByDirection(ctx context.Context, account entity.Account) (entity.Totals, error)

	// Delete removes one transaction
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the given ID
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every transaction and reports how many rows were deleted
	DeleteAll(ctx context.Context) (int64, error)
}
