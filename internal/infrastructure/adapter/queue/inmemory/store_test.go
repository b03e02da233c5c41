package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
)

func TestStore_SaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.SaveJob(ctx, &queue.IngestMessageJob{})
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	job := &queue.IngestMessageJob{JobID: "job-1", Status: queue.JobStatusPending}
	require.NoError(t, store.SaveJob(ctx, job))

	// Mutating the caller's copy does not leak into the store
	job.Status = queue.JobStatusFailed
	stored, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, queue.JobStatusPending, stored.Status)

	_, err = store.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrJobNotFound)
}

func TestStore_ListJobs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)

	jobs := []*queue.IngestMessageJob{
		{JobID: "c", Source: queue.SourceScan, Status: queue.JobStatusCompleted, CreatedAt: base.Add(2 * time.Second)},
		{JobID: "a", Source: queue.SourceLive, Status: queue.JobStatusPending, CreatedAt: base},
		{JobID: "b", Source: queue.SourceScan, Status: queue.JobStatusPending, CreatedAt: base.Add(time.Second)},
	}
	for _, job := range jobs {
		require.NoError(t, store.SaveJob(ctx, job))
	}

	tests := []struct {
		name     string
		filter   queue.JobFilter
		expected []string
	}{
		{"All", queue.JobFilter{}, []string{"a", "b", "c"}},
		{"BySource", queue.JobFilter{Source: queue.SourceScan}, []string{"b", "c"}},
		{"ByStatus", queue.JobFilter{Status: queue.JobStatusPending}, []string{"a", "b"}},
		{"Paged", queue.JobFilter{Limit: 1, Offset: 1}, []string{"b"}},
		{"OffsetPastEnd", queue.JobFilter{Offset: 5}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := store.ListJobs(ctx, tc.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(result))
			for _, job := range result {
				ids = append(ids, job.JobID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestStore_UpdateJobStatus(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.SaveJob(ctx, &queue.IngestMessageJob{JobID: "job-1", Status: queue.JobStatusRunning}))

	require.NoError(t, store.UpdateJobStatus(ctx, "job-1", queue.JobStatusFailed, "boom"))
	job, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, queue.JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.Error)

	assert.ErrorIs(t, store.UpdateJobStatus(ctx, "missing", queue.JobStatusFailed, ""), errs.ErrJobNotFound)
}
