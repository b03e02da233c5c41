package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

// MockMessageParser is a testify mock for usecase.MessageParser
type MockMessageParser struct {
	mock.Mock
}

// NewMockMessageParser creates a MockMessageParser that asserts its expectations on cleanup
func NewMockMessageParser(t *testing.T) *MockMessageParser {
	m := &MockMessageParser{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMessageParser) Parse(msg entity.Message) (*entity.Transaction, error) {
	args := m.Called(msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

// MockIngestionUseCase is a testify mock for usecase.IngestionUseCase
type MockIngestionUseCase struct {
	mock.Mock
}

// NewMockIngestionUseCase creates a MockIngestionUseCase that asserts its expectations on cleanup
func NewMockIngestionUseCase(t *testing.T) *MockIngestionUseCase {
	m := &MockIngestionUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIngestionUseCase) Ingest(ctx context.Context, msg entity.Message) (*usecase.IngestResult, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.IngestResult), args.Error(1)
}

func (m *MockIngestionUseCase) Submit(ctx context.Context, msg entity.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *MockIngestionUseCase) Scan(ctx context.Context, req usecase.ScanRequest) (*usecase.ScanResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ScanResult), args.Error(1)
}

func (m *MockIngestionUseCase) Preview(msg entity.Message) (*entity.Transaction, error) {
	args := m.Called(msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockIngestionUseCase) GetJob(ctx context.Context, jobID string) (*queue.IngestMessageJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.IngestMessageJob), args.Error(1)
}

func (m *MockIngestionUseCase) HandleJob(ctx context.Context, job *queue.IngestMessageJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockLedgerUseCase is a testify mock for usecase.LedgerUseCase
type MockLedgerUseCase struct {
	mock.Mock
}

// NewMockLedgerUseCase creates a MockLedgerUseCase that asserts its expectations on cleanup
func NewMockLedgerUseCase(t *testing.T) *MockLedgerUseCase {
	m := &MockLedgerUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLedgerUseCase) ListTransactions(ctx context.Context, query persistence.TransactionQuery) ([]*entity.Transaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) FindByReference(ctx context.Context, referenceID string) (*entity.Transaction, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) RecordManual(ctx context.Context, req usecase.ManualEntryRequest) (*entity.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) DeleteTransaction(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerUseCase) ClearAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerUseCase) GetBalance(ctx context.Context) (*entity.Balance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Balance), args.Error(1)
}

func (m *MockLedgerUseCase) ExpenseSeries(ctx context.Context, mode entity.SeriesMode, offset int) (*entity.ExpenseSeries, error) {
	args := m.Called(ctx, mode, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExpenseSeries), args.Error(1)
}

func (m *MockLedgerUseCase) ExportTransactions(ctx context.Context, w io.Writer, query persistence.TransactionQuery) error {
	args := m.Called(ctx, w, query)
	return args.Error(0)
}

func (m *MockLedgerUseCase) ArchiveReport(ctx context.Context, query persistence.TransactionQuery) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerUseCase) ReportFormat() (string, string) {
	args := m.Called()
	return args.String(0), args.String(1)
}
