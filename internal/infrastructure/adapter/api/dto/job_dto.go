package dto

import (
	"time"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
)

// JobResponse exposes the state of a queued ingestion job
type JobResponse struct {
	JobID         string     `json:"jobId"`
	Source        string     `json:"source"`
	Status        string     `json:"status"`
	Outcome       string     `json:"outcome,omitempty"`
	TransactionID string     `json:"transactionId,omitempty"`
	Error         string     `json:"error,omitempty"`
	RetryCount    int        `json:"retryCount"`
	MaxRetries    int        `json:"maxRetries"`
	CreatedAt     time.Time  `json:"createdAt"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// FromJob converts a queue job
func FromJob(job *queue.IngestMessageJob) JobResponse {
	return JobResponse{
		JobID:         job.JobID,
		Source:        string(job.Source),
		Status:        string(job.Status),
		Outcome:       job.Outcome,
		TransactionID: job.TransactionID,
		Error:         job.Error,
		RetryCount:    job.RetryCount,
		MaxRetries:    job.MaxRetries,
		CreatedAt:     job.CreatedAt,
		StartedAt:     job.StartedAt,
		CompletedAt:   job.CompletedAt,
	}
}
