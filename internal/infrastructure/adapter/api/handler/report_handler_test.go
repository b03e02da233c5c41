package handler

import (
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
	mcore "github.com/amirhossein-jamali/sms-ledger/mocks/port/core"
	musecase "github.com/amirhossein-jamali/sms-ledger/mocks/port/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func newReportRouter(t *testing.T) (*gin.Engine, *musecase.MockLedgerUseCase) {
	ledger := musecase.NewMockLedgerUseCase(t)
	tp := mcore.NewMockTimeProvider(t).Fixed(time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC))
	h := NewReportHandler(ledger, newTestLogger(t), tp)

	router := gin.New()
	router.GET("/api/v1/reports/transactions.xlsx", h.Export)
	router.POST("/api/v1/reports/archive", h.Archive)
	return router, ledger
}

func TestReportHandler_Export(t *testing.T) {
	router, ledger := newReportRouter(t)

	ledger.On("ExportTransactions", mock.Anything, mock.Anything, mock.MatchedBy(func(q persistence.TransactionQuery) bool {
		return q.From != nil && *q.From == 1735689600000 && q.To == nil
	})).Run(func(args mock.Arguments) {
		_, _ = io.WriteString(args.Get(1).(io.Writer), "xlsx-bytes")
	}).Return(nil).Once()
	ledger.On("ReportFormat").Return(xlsxContentType, ".xlsx").Once()

	rec := performRequest(t, router, http.MethodGet, "/api/v1/reports/transactions.xlsx?from=1735689600000", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions-20250305-143000.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", rec.Body.String())
}

func TestReportHandler_Export_Failure(t *testing.T) {
	router, ledger := newReportRouter(t)
	ledger.On("ExportTransactions", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("excel exploded")).Once()

	rec := performRequest(t, router, http.MethodGet, "/api/v1/reports/transactions.xlsx", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	var resp dto.ErrorResponse
	decodeBody(t, rec, &resp)
	assert.NotContains(t, resp.Message, "excel exploded")
}

func TestReportHandler_Archive(t *testing.T) {
	router, ledger := newReportRouter(t)
	ledger.On("ArchiveReport", mock.Anything, persistence.TransactionQuery{}).
		Return("gs://sms-ledger-reports/transactions-20250305-143000.xlsx", nil).Once()

	rec := performRequest(t, router, http.MethodPost, "/api/v1/reports/archive", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.ArchiveResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "gs://sms-ledger-reports/transactions-20250305-143000.xlsx", resp.Location)
}
