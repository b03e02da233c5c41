package queue

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeIngestMessage represents parsing and storing one message.
	JobTypeIngestMessage JobType = "ingest_message"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
	// JobStatusRetrying indicates the job failed and is being retried.
	JobStatusRetrying JobStatus = "retrying"
)

// Source tells how a message reached the pipeline.
type Source string

const (
	// SourceLive is a message delivered as it arrived.
	SourceLive Source = "live"
	// SourceScan is a message found by a historical inbox scan.
	SourceScan Source = "scan"
)

// IngestMessageJob carries one message through the ingestion pipeline.
type IngestMessageJob struct {
	JobID       string     `json:"job_id"`
	Source      Source     `json:"source"`
	Sender      string     `json:"sender"`
	Body        string     `json:"body"`
	OccurredAt  int64      `json:"occurred_at"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count"`
	MaxRetries  int        `json:"max_retries"`

	// Outcome and TransactionID are filled in by the handler.
	Outcome       string `json:"outcome,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// NewIngestMessageJob creates a pending job for msg.
func NewIngestMessageJob(msg entity.Message, source Source) *IngestMessageJob {
	return &IngestMessageJob{
		Source:     source,
		Sender:     msg.Sender,
		Body:       msg.Body,
		OccurredAt: msg.OccurredAt,
	}
}

// Message returns the message carried by the job.
func (j *IngestMessageJob) Message() entity.Message {
	return entity.Message{Sender: j.Sender, Body: j.Body, OccurredAt: j.OccurredAt}
}

// GetType returns the job type.
func (j *IngestMessageJob) GetType() JobType {
	return JobTypeIngestMessage
}

// Publisher enqueues jobs for asynchronous processing.
type Publisher interface {
	// PublishIngestMessage enqueues a message ingestion job.
	PublishIngestMessage(ctx context.Context, job *IngestMessageJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer delivers queued jobs to a handler.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes a job. A returned error marks the attempt as failed
// and lets the queue retry while attempts remain.
type JobHandler func(ctx context.Context, job *IngestMessageJob) error

// JobStore stores and retrieves job status.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *IngestMessageJob) error

	// GetJob retrieves a job by ID. Returns errs.ErrJobNotFound for unknown IDs.
	GetJob(ctx context.Context, jobID string) (*IngestMessageJob, error)

	// ListJobs retrieves jobs with optional filtering, oldest first.
	ListJobs(ctx context.Context, filter JobFilter) ([]*IngestMessageJob, error)

	// UpdateJobStatus updates the status of a job.
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus, errorMsg string) error
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	Source Source
	Status JobStatus
	Limit  int
	Offset int
}
