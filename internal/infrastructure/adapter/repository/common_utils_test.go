package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

func TestErrorClassifier_Classify(t *testing.T) {
	classifier := NewErrorClassifier()

	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"Nil", nil, ""},
		{"NotFound", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), NotFoundError},
		{"GormDuplicate", gorm.ErrDuplicatedKey, DuplicateKeyError},
		{"PostgresDuplicate", errors.New(`duplicate key value violates unique constraint "transactions_pkey"`), DuplicateKeyError},
		{"MySQLDuplicate", errors.New("Error 1062: Duplicate entry 'x' for key 'PRIMARY'"), DuplicateKeyError},
		{"Timeout", errors.New("i/o timeout"), TransientError},
		{"Deadlock", errors.New("ERROR: deadlock detected"), TransientError},
		{"Dial", errors.New("dial tcp: lookup db: no such host"), ConnectionError},
		{"NotNull", errors.New(`null value in column "merchant" violates not-null constraint`), ConstraintError},
		{"Other", errors.New("syntax error"), UnknownError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.err))
		})
	}
}

func TestErrorClassifier_ToDomain(t *testing.T) {
	classifier := NewErrorClassifier()

	assert.NoError(t, classifier.ToDomain(nil, "upsert"))
	assert.ErrorIs(t, classifier.ToDomain(gorm.ErrRecordNotFound, "get"), errs.ErrTransactionNotFound)
	assert.ErrorIs(t, classifier.ToDomain(gorm.ErrDuplicatedKey, "upsert"), errs.ErrConstraintViolation)
	assert.ErrorIs(t, classifier.ToDomain(errors.New("connection refused"), "list"), errs.ErrDatabaseConnection)
	assert.ErrorIs(t, classifier.ToDomain(errors.New("syntax error"), "list"), errs.ErrDatabaseConnection)
}
