package ledger

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	mcore "github.com/amirhossein-jamali/sms-ledger/mocks/port/core"
	mpers "github.com/amirhossein-jamali/sms-ledger/mocks/port/persistence"
	mreport "github.com/amirhossein-jamali/sms-ledger/mocks/port/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestExportTransactions(t *testing.T) {
	svc, m := newTestLedger(t, time.Now())
	transactions := []*entity.Transaction{{ID: "tx-1"}}

	m.repo.On("List", mock.Anything, persistence.TransactionQuery{}).Return(transactions, nil).Once()
	m.writer.On("Write", mock.Anything, transactions).Run(func(args mock.Arguments) {
		_, _ = args.Get(0).(io.Writer).Write([]byte("sheet"))
	}).Return(nil).Once()

	var buf bytes.Buffer
	err := svc.ExportTransactions(context.Background(), &buf, persistence.TransactionQuery{})

	require.NoError(t, err)
	assert.Equal(t, "sheet", buf.String())
}

func TestArchiveReport(t *testing.T) {
	now := time.Date(2024, time.May, 12, 10, 0, 0, 0, ist)
	svc, m := newTestLedger(t, now)
	transactions := []*entity.Transaction{{ID: "tx-1"}}

	m.repo.On("List", mock.Anything, mock.Anything).Return(transactions, nil).Once()
	m.writer.On("Write", mock.Anything, transactions).Run(func(args mock.Arguments) {
		_, _ = args.Get(0).(io.Writer).Write([]byte("sheet"))
	}).Return(nil).Once()
	m.writer.On("Extension").Return(".xlsx")
	m.writer.On("ContentType").Return(xlsxContentType)
	m.archive.On("Upload", mock.Anything, "reports/transactions-20240512T043000.xlsx", []byte("sheet"), xlsxContentType).
		Return("gs://bucket/reports/transactions-20240512T043000.xlsx", nil).Once()

	location, err := svc.ArchiveReport(context.Background(), persistence.TransactionQuery{})

	require.NoError(t, err)
	assert.Equal(t, "gs://bucket/reports/transactions-20240512T043000.xlsx", location)
}

func TestArchiveReport_NotConfigured(t *testing.T) {
	svc := NewLedgerService(
		mpers.NewMockTransactionRepository(t),
		mreport.NewMockWriter(t),
		nil,
		mcore.NewMockTimeProvider(t),
		mcore.NewMockLogger(t).AllowAll(),
	)

	_, err := svc.ArchiveReport(context.Background(), persistence.TransactionQuery{})

	assert.ErrorIs(t, err, errs.ErrInternalServer)
}

func TestReportFormat(t *testing.T) {
	svc, m := newTestLedger(t, time.Now())
	m.writer.On("ContentType").Return(xlsxContentType).Once()
	m.writer.On("Extension").Return(".xlsx").Once()

	contentType, ext := svc.ReportFormat()

	assert.Equal(t, xlsxContentType, contentType)
	assert.Equal(t, ".xlsx", ext)
}
