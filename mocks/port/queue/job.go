package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
)

// MockPublisher is a testify mock for queue.Publisher
type MockPublisher struct {
	mock.Mock
}

// NewMockPublisher creates a MockPublisher that asserts its expectations on cleanup
func NewMockPublisher(t *testing.T) *MockPublisher {
	m := &MockPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPublisher) PublishIngestMessage(ctx context.Context, job *queue.IngestMessageJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockJobStore is a testify mock for queue.JobStore
type MockJobStore struct {
	mock.Mock
}

// NewMockJobStore creates a MockJobStore that asserts its expectations on cleanup
func NewMockJobStore(t *testing.T) *MockJobStore {
	m := &MockJobStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockJobStore) SaveJob(ctx context.Context, job *queue.IngestMessageJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobStore) GetJob(ctx context.Context, jobID string) (*queue.IngestMessageJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.IngestMessageJob), args.Error(1)
}

func (m *MockJobStore) ListJobs(ctx context.Context, filter queue.JobFilter) ([]*queue.IngestMessageJob, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queue.IngestMessageJob), args.Error(1)
}

func (m *MockJobStore) UpdateJobStatus(ctx context.Context, jobID string, status queue.JobStatus, errorMsg string) error {
	args := m.Called(ctx, jobID, status, errorMsg)
	return args.Error(0)
}
