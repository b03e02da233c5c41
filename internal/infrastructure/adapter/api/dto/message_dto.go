package dto

import (
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

// MessageRequest is one raw inbox message
type MessageRequest struct {
	Sender     string `json:"sender" binding:"required"`
	Body       string `json:"body" binding:"required"`
	OccurredAt int64  `json:"occurredAt" binding:"required,gt=0"`
}

// ToEntity converts the request into a domain message
func (r MessageRequest) ToEntity() entity.Message {
	return entity.Message{Sender: r.Sender, Body: r.Body, OccurredAt: r.OccurredAt}
}

// SubmitResponse acknowledges an enqueued message
type SubmitResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// ParseResponse is the dry-run result of parsing a message
type ParseResponse struct {
	Accepted    bool                 `json:"accepted"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Reason      string               `json:"reason,omitempty"`
}

// ScanRequest is a batch of inbox messages for historical ingestion
type ScanRequest struct {
	Messages []MessageRequest `json:"messages" binding:"required,dive"`
	Since    *int64           `json:"since"`
}

// ToUseCase converts the request into a scan request
func (r ScanRequest) ToUseCase() usecase.ScanRequest {
	messages := make([]entity.Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		messages = append(messages, m.ToEntity())
	}
	return usecase.ScanRequest{Messages: messages, Since: r.Since}
}

// ScanResponse summarizes an enqueued historical scan
type ScanResponse struct {
	WindowStart int64    `json:"windowStart"`
	Enqueued    int      `json:"enqueued"`
	Skipped     int      `json:"skipped"`
	Invalid     int      `json:"invalid"`
	JobIDs      []string `json:"jobIds"`
}

// FromScanResult converts a use case scan result
func FromScanResult(r *usecase.ScanResult) ScanResponse {
	jobIDs := r.JobIDs
	if jobIDs == nil {
		jobIDs = []string{}
	}
	return ScanResponse{
		WindowStart: r.WindowStart,
		Enqueued:    r.Enqueued,
		Skipped:     r.Skipped,
		Invalid:     r.Invalid,
		JobIDs:      jobIDs,
	}
}
