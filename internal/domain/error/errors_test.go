package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrMessageTooShort.Error() != "message too short" {
		t.Errorf("ErrMessageTooShort has unexpected message: %s", ErrMessageTooShort.Error())
	}
	if ErrInvalidAmount.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"MessageTooShort", ErrMessageTooShort, 4001},
		{"OneTimePassword", ErrOneTimePassword, 4001},
		{"UnparseableAmount", ErrUnparseableAmount, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"NegativeAmount", ErrNegativeAmount, 4002},
		{"InvalidDirection", ErrInvalidDirection, 4003},
		{"InvalidAccount", ErrInvalidAccount, 4004},
		{"ConstraintViolation", ErrConstraintViolation, 4005},
		{"InvalidRequest", ErrInvalidRequest, 4006},
		{"InvalidSeriesMode", ErrInvalidSeriesMode, 4007},
		{"TransactionNotFound", ErrTransactionNotFound, 4040},
		{"JobNotFound", ErrJobNotFound, 4041},
		{"ScanInProgress", ErrScanInProgress, 4090},
		{"Database", ErrDatabaseConnection, 5001},
		{"QueueFull", ErrQueueFull, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidDirection), 4003},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestRejectionError(t *testing.T) {
	err := NewRejectionError("VM-HDFCBK", 1700000000000, "filter", ErrIgnoredIntent)

	expectedErrMsg := `message from "VM-HDFCBK" rejected at filter: message describes no completed transaction`
	if err.Error() != expectedErrMsg {
		t.Errorf("RejectionError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	if !errors.Is(err, ErrIgnoredIntent) {
		t.Errorf("errors.Is(err, ErrIgnoredIntent) = false, want true")
	}
	if !IsRejection(err) {
		t.Errorf("IsRejection(err) = false, want true")
	}

	var rejection *RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("errors.As failed: not a *RejectionError")
	}
	fields := rejection.LogFields()
	if fields["stage"] != "filter" {
		t.Errorf("LogFields stage = %v, want filter", fields["stage"])
	}
	if fields["error_code"] != CodeMessageRejected {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeMessageRejected)
	}
}

func TestIngestionError(t *testing.T) {
	err := NewIngestionError("tx-1", "GEN-tx-1", "store", ErrDatabaseConnection)

	expectedErrMsg := "ingestion of transaction tx-1 (reference: GEN-tx-1) failed at store: database connection error"
	if err.Error() != expectedErrMsg {
		t.Errorf("IngestionError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	if !errors.Is(err, ErrDatabaseConnection) {
		t.Errorf("errors.Is(err, ErrDatabaseConnection) = false, want true")
	}

	var ingestionErr *IngestionError
	if !errors.As(err, &ingestionErr) {
		t.Fatalf("errors.As failed: not a *IngestionError")
	}
	if ingestionErr.LogFields()["error_code"] != CodeDatabase {
		t.Errorf("LogFields error_code = %v, want %d", ingestionErr.LogFields()["error_code"], CodeDatabase)
	}
}

func TestErrorHelperFunctions(t *testing.T) {
	if IsRejection(ErrInvalidAmount) {
		t.Errorf("IsRejection(ErrInvalidAmount) = true, want false")
	}
	if IsFiltered(ErrNoAmountPattern) {
		t.Errorf("IsFiltered(ErrNoAmountPattern) = true, want false")
	}
	if !IsFiltered(fmt.Errorf("wrapped: %w", ErrOneTimePassword)) {
		t.Errorf("IsFiltered(wrapped OTP) = false, want true")
	}
	if !IsNotFoundError(fmt.Errorf("wrapped: %w", ErrJobNotFound)) {
		t.Errorf("IsNotFoundError(wrapped job) = false, want true")
	}
	if !IsValidationError(ErrInvalidSeriesMode) {
		t.Errorf("IsValidationError(ErrInvalidSeriesMode) = false, want true")
	}
	if IsValidationError(ErrDatabaseConnection) {
		t.Errorf("IsValidationError(ErrDatabaseConnection) = true, want false")
	}
	if !IsScanInProgressError(fmt.Errorf("scan: %w", ErrScanInProgress)) {
		t.Errorf("IsScanInProgressError(wrapped) = false, want true")
	}
}
