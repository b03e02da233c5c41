package usecase

import (
	"context"
	"io"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
)

// MessageParser turns a raw message into a transaction or a rejection error
type MessageParser interface {
	Parse(msg entity.Message) (*entity.Transaction, error)
}

// IngestOutcome describes what ingestion did with a message
type IngestOutcome string

// Ingestion outcomes
const (
	OutcomeStored   IngestOutcome = "stored"   // new transaction
	OutcomeReplaced IngestOutcome = "replaced" // same identity was already stored
	OutcomeRejected IngestOutcome = "rejected" // message is not a transaction
)

// IngestResult contains info about one ingested message
type IngestResult struct {
	Outcome      IngestOutcome
	Transaction  *entity.Transaction
	RejectReason string
	Notified     bool
	NotifyError  string
}

// ScanRequest is a batch of inbox messages for historical ingestion
type ScanRequest struct {
	Messages []entity.Message
	Since    *int64 // window start in epoch millis; defaults to the start of the current year
}

// ScanResult summarizes an enqueued historical scan
type ScanResult struct {
	WindowStart int64
	Enqueued    int
	Skipped     int // before the window start
	Invalid     int // failed message validation
	JobIDs      []string
}

// IngestionUseCase defines the message ingestion pipeline
type IngestionUseCase interface {
	// Ingest parses, stores and announces one message synchronously
	Ingest(ctx context.Context, msg entity.Message) (*IngestResult, error)

	// Submit enqueues a live message and returns the job ID
	Submit(ctx context.Context, msg entity.Message) (string, error)

	// Scan filters a batch to the time window and enqueues it newest first
	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)

	// Preview parses without storing or notifying
	Preview(msg entity.Message) (*entity.Transaction, error)

	// GetJob returns the status of a submitted job
	GetJob(ctx context.Context, jobID string) (*queue.IngestMessageJob, error)

	// HandleJob is the queue.JobHandler for ingestion jobs
	HandleJob(ctx context.Context, job *queue.IngestMessageJob) error
}

// ManualEntryRequest represents a transaction typed in by the user
type ManualEntryRequest struct {
	Amount      string `json:"amount" validate:"required,numeric"`
	Direction   string `json:"direction" validate:"required,oneof=income expense"`
	Merchant    string `json:"merchant" validate:"max=120"`
	Description string `json:"description" validate:"max=1000"`
	OccurredAt  int64  `json:"occurredAt" validate:"gte=0"`
	Account     string `json:"account" validate:"omitempty,oneof=Main Secondary"`
}

// LedgerUseCase defines read models and user actions over stored transactions
type LedgerUseCase interface {
	ListTransactions(ctx context.Context, query persistence.TransactionQuery) ([]*entity.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*entity.Transaction, error)
	FindByReference(ctx context.Context, referenceID string) (*entity.Transaction, error)
	RecordManual(ctx context.Context, req ManualEntryRequest) (*entity.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ClearAll(ctx context.Context) (int64, error)
	GetBalance(ctx context.Context) (*entity.Balance, error)
	ExpenseSeries(ctx context.Context, mode entity.SeriesMode, offset int) (*entity.ExpenseSeries, error)

	// ExportTransactions renders the matching transactions with the report writer
	ExportTransactions(ctx context.Context, w io.Writer, query persistence.TransactionQuery) error
	// ArchiveReport renders and uploads a report, returning its location
	ArchiveReport(ctx context.Context, query persistence.TransactionQuery) (string, error)
	// ReportFormat returns the content type and file extension of exports
	ReportFormat() (contentType string, extension string)
}
