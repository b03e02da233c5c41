package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
)

// HTTPStatus maps a domain error onto an HTTP status code
func HTTPStatus(err error) int {
	switch code := errs.ErrorCode(err); {
	case code == errs.CodeMessageRejected:
		return http.StatusUnprocessableEntity
	case code == errs.CodeTransactionNotFound, code == errs.CodeJobNotFound:
		return http.StatusNotFound
	case code == errs.CodeScanInProgress:
		return http.StatusConflict
	case code == errs.CodeQueueUnavailable, code == errs.CodeDatabase:
		return http.StatusServiceUnavailable
	case code == errs.CodeConstraintViolation:
		return http.StatusConflict
	case code >= 4000 && code < 5000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Server-side details are logged, not returned.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := HTTPStatus(err)
	message := err.Error()

	fields := map[string]any{
		"operation": operation,
		"status":    status,
		"error":     err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
		message = http.StatusText(status)
	} else {
		logger.Debug("Request rejected", fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

// bindError wraps a gin binding failure as an invalid request
func bindError(err error) error {
	return fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err.Error())
}

// parseTransactionQuery reads from, to, account, direction, limit and offset query parameters
func parseTransactionQuery(c *gin.Context) (persistence.TransactionQuery, error) {
	var query persistence.TransactionQuery

	var err error
	if query.From, err = optionalInt64(c, "from"); err != nil {
		return query, err
	}
	if query.To, err = optionalInt64(c, "to"); err != nil {
		return query, err
	}

	if raw := c.Query("account"); raw != "" {
		if !entity.IsValidAccount(raw) {
			return query, fmt.Errorf("%w: %s", errs.ErrInvalidAccount, raw)
		}
		account := entity.Account(raw)
		query.Account = &account
	}
	if raw := c.Query("direction"); raw != "" {
		if !entity.IsValidDirection(raw) {
			return query, fmt.Errorf("%w: %s", errs.ErrInvalidDirection, raw)
		}
		direction := entity.Direction(raw)
		query.Direction = &direction
	}

	if query.Limit, err = optionalInt(c, "limit"); err != nil {
		return query, err
	}
	if query.Offset, err = optionalInt(c, "offset"); err != nil {
		return query, err
	}
	return query, nil
}

func optionalInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be epoch milliseconds", errs.ErrInvalidRequest, name)
	}
	return &v, nil
}

func optionalInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errs.ErrInvalidRequest, name)
	}
	return v, nil
}

func rejectionReason(err error) string {
	var rejection *errs.RejectionError
	if errors.As(err, &rejection) {
		return rejection.Err.Error()
	}
	return err.Error()
}
