package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeMessageRejected     = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidDirection    = 4003
	CodeInvalidAccount      = 4004
	CodeConstraintViolation = 4005
	CodeInvalidRequest      = 4006
	CodeInvalidSeriesMode   = 4007
	CodeTransactionNotFound = 4040
	CodeJobNotFound         = 4041
	CodeScanInProgress      = 4090

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeDatabase          = 5001
	CodeQueueUnavailable  = 5030
	CodeNotificationError = 5020
)

// Rejection reasons produced by the message parser.
var (
	// ErrMessageTooShort is returned when a message body is below the minimum length
	ErrMessageTooShort = errors.New("message too short")

	// ErrIgnoredIntent is returned for future-tense, mandate or verification messages
	ErrIgnoredIntent = errors.New("message describes no completed transaction")

	// ErrNoAmountPattern is returned when no amount strategy matches the body
	ErrNoAmountPattern = errors.New("no amount pattern matched")

	// ErrUnparseableAmount is returned when the captured amount is not a decimal
	ErrUnparseableAmount = errors.New("captured amount is not numeric")

	// ErrOneTimePassword is returned when a late check finds an OTP or verification code
	ErrOneTimePassword = errors.New("message contains a one-time password")
)

// Base error types
var (
	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidDirection is returned for a direction other than income or expense
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrInvalidAccount is returned for an account other than Main or Secondary
	ErrInvalidAccount = errors.New("invalid account")

	// ErrInvalidTransactionID is returned when the transaction ID is empty
	ErrInvalidTransactionID = errors.New("transaction ID cannot be empty")

	// ErrInvalidSeriesMode is returned for an unknown expense series mode
	ErrInvalidSeriesMode = errors.New("invalid expense series mode")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrJobNotFound is returned when a queued job is unknown
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrScanInProgress is returned when another historical scan holds the scan lock
	ErrScanInProgress = errors.New("historical scan already in progress")

	// ErrLockNotObtained is returned by a Locker when the key is held elsewhere
	ErrLockNotObtained = errors.New("lock not obtained")

	// ErrQueueClosed is returned when publishing to a stopped queue
	ErrQueueClosed = errors.New("job queue is closed")

	// ErrQueueFull is returned when the queue buffer cannot accept more jobs
	ErrQueueFull = errors.New("job queue is full")

	// ErrNotificationFailed is returned when an alert could not be delivered
	ErrNotificationFailed = errors.New("notification delivery failed")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case IsRejection(err):
		return CodeMessageRejected
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidDirection):
		return CodeInvalidDirection
	case errors.Is(err, ErrInvalidAccount):
		return CodeInvalidAccount
	case errors.Is(err, ErrInvalidSeriesMode):
		return CodeInvalidSeriesMode
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidTransactionID):
		return CodeInvalidRequest
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrTransactionNotFound), errors.Is(err, ErrNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrJobNotFound):
		return CodeJobNotFound
	case errors.Is(err, ErrScanInProgress):
		return CodeScanInProgress
	case errors.Is(err, ErrQueueClosed), errors.Is(err, ErrQueueFull):
		return CodeQueueUnavailable
	case errors.Is(err, ErrNotificationFailed):
		return CodeNotificationError
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabase
	default:
		return CodeInternalServer
	}
}

// RejectionError describes why a message produced no transaction
type RejectionError struct {
	Sender     string
	OccurredAt int64
	Stage      string
	Err        error
}

// Error implements the error interface for RejectionError
func (e *RejectionError) Error() string {
	return fmt.Sprintf("message from %q rejected at %s: %v", e.Sender, e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *RejectionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *RejectionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "message_rejected",
		"sender":      e.Sender,
		"occurred_at": e.OccurredAt,
		"stage":       e.Stage,
		"reason":      e.Err.Error(),
		"error_code":  CodeMessageRejected,
	}
}

// NewRejectionError creates a rejection error for the given pipeline stage
func NewRejectionError(sender string, occurredAt int64, stage string, err error) error {
	return &RejectionError{
		Sender:     sender,
		OccurredAt: occurredAt,
		Stage:      stage,
		Err:        err,
	}
}

// IngestionError represents a failure while storing or announcing a parsed transaction
type IngestionError struct {
	TransactionID string
	ReferenceID   string
	Step          string
	Err           error
}

// Error implements the error interface for IngestionError
func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion of transaction %s (reference: %s) failed at %s: %v",
		e.TransactionID, e.ReferenceID, e.Step, e.Err)
}

// Unwrap returns the underlying error
func (e *IngestionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *IngestionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "ingestion_error",
		"transaction_id": e.TransactionID,
		"reference_id":   e.ReferenceID,
		"step":           e.Step,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewIngestionError creates a detailed ingestion error
func NewIngestionError(transactionID, referenceID, step string, err error) error {
	return &IngestionError{
		TransactionID: transactionID,
		ReferenceID:   referenceID,
		Step:          step,
		Err:           err,
	}
}

// IsRejection reports whether err means "this message is not a transaction"
func IsRejection(err error) bool {
	return errors.Is(err, ErrMessageTooShort) ||
		errors.Is(err, ErrIgnoredIntent) ||
		errors.Is(err, ErrNoAmountPattern) ||
		errors.Is(err, ErrUnparseableAmount) ||
		errors.Is(err, ErrOneTimePassword)
}

// IsFiltered reports whether the rejection came from a guard rather than extraction
func IsFiltered(err error) bool {
	return errors.Is(err, ErrMessageTooShort) ||
		errors.Is(err, ErrIgnoredIntent) ||
		errors.Is(err, ErrOneTimePassword)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrJobNotFound)
}

// IsValidationError checks if the error comes from invalid caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrInvalidDirection) ||
		errors.Is(err, ErrInvalidAccount) ||
		errors.Is(err, ErrInvalidSeriesMode) ||
		errors.Is(err, ErrInvalidTransactionID) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsScanInProgressError checks if the error is a scan lock conflict
func IsScanInProgressError(err error) bool {
	return errors.Is(err, ErrScanInProgress)
}
