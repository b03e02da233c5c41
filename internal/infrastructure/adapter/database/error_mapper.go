package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation timed out", errs.ErrDatabaseConnection, operation)
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	// Postgres says "violates ... constraint", MySQL says "Error 1062" / "Error 1452"
	case strings.Contains(errMsg, "duplicate key"),
		strings.Contains(errMsg, "duplicate entry"),
		strings.Contains(errMsg, "unique constraint"),
		strings.Contains(errMsg, "check constraint"),
		strings.Contains(errMsg, "foreign key constraint"),
		strings.Contains(errMsg, "not-null constraint"),
		strings.Contains(errMsg, "data too long"),
		strings.Contains(errMsg, "value too long"):
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, operation)

	case strings.Contains(errMsg, "connection refused"),
		strings.Contains(errMsg, "no connection"),
		strings.Contains(errMsg, "connection reset"),
		strings.Contains(errMsg, "bad connection"),
		strings.Contains(errMsg, "database is closed"):
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, operation)

	case strings.Contains(errMsg, "timeout"),
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", errs.ErrDatabaseConnection, operation)

	default:
		return fmt.Errorf("%w: %s failed: %v", errs.ErrInternalServer, operation, err)
	}
}
