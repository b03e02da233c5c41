package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
)

// Defaults applied to zero Options fields.
const (
	DefaultWorkers        = 4
	DefaultBufferSize     = 1000
	DefaultRetryBaseDelay = time.Second
	DefaultEnqueueTimeout = 5 * time.Second
	maxRetryDelay         = time.Minute
)

// Options configures a Queue.
type Options struct {
	Workers        int
	BufferSize     int
	RetryBaseDelay time.Duration
	EnqueueTimeout time.Duration // how long a publish waits on a full buffer
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.BufferSize < 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if o.EnqueueTimeout <= 0 {
		o.EnqueueTimeout = DefaultEnqueueTimeout
	}
	return o
}

// Queue is an in-memory implementation of queue.Publisher and queue.Consumer.
// Jobs are distributed over a buffered channel to a fixed pool of workers.
// Failed jobs are re-published with exponential backoff until MaxRetries is spent.
type Queue struct {
	opts         Options
	jobChan      chan *queue.IngestMessageJob
	closeChan    chan struct{}
	wg           sync.WaitGroup
	mu           sync.RWMutex
	store        queue.JobStore
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	closed       bool
	started      bool
}

// NewQueue creates a new in-memory job queue. store may be nil.
func NewQueue(opts Options, store queue.JobStore, logger coreport.Logger, timeProvider coreport.TimeProvider) *Queue {
	opts = opts.withDefaults()
	return &Queue{
		opts:         opts,
		jobChan:      make(chan *queue.IngestMessageJob, opts.BufferSize),
		closeChan:    make(chan struct{}),
		store:        store,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// PublishIngestMessage enqueues a message ingestion job, assigning an ID when missing.
func (q *Queue) PublishIngestMessage(ctx context.Context, job *queue.IngestMessageJob) error {
	if q.isClosed() {
		return errs.ErrQueueClosed
	}

	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = queue.JobStatusPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = q.timeProvider.Now()
	}

	if q.store != nil {
		if err := q.store.SaveJob(ctx, job); err != nil {
			return fmt.Errorf("failed to save job: %w", err)
		}
	}

	timer := time.NewTimer(q.opts.EnqueueTimeout)
	defer timer.Stop()

	select {
	case q.jobChan <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return errs.ErrQueueClosed
	case <-timer.C:
		return errs.ErrQueueFull
	}
}

// Start launches the worker pool. Workers stop when ctx ends or Stop is called.
func (q *Queue) Start(ctx context.Context, handler queue.JobHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errs.ErrQueueClosed
	}
	if q.started {
		return fmt.Errorf("queue already started")
	}
	q.started = true

	for i := 0; i < q.opts.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}

	q.logger.Info("Job queue started", map[string]any{
		"workers":     q.opts.Workers,
		"buffer_size": q.opts.BufferSize,
	})
	return nil
}

func (q *Queue) worker(ctx context.Context, handler queue.JobHandler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			q.processJob(ctx, job, handler)
		}
	}
}

// processJob runs one attempt of job and schedules a retry on failure.
func (q *Queue) processJob(ctx context.Context, job *queue.IngestMessageJob, handler queue.JobHandler) {
	startedAt := q.timeProvider.Now()
	job.Status = queue.JobStatusRunning
	job.StartedAt = &startedAt
	q.save(ctx, job)

	err := handler(ctx, job)

	completedAt := q.timeProvider.Now()
	job.CompletedAt = &completedAt

	if err == nil {
		job.Status = queue.JobStatusCompleted
		job.Error = ""
		q.save(ctx, job)
		return
	}

	job.Error = err.Error()
	if job.RetryCount >= job.MaxRetries {
		job.Status = queue.JobStatusFailed
		q.save(ctx, job)
		q.logger.Error("Job failed", map[string]any{
			"job_id":      job.JobID,
			"source":      job.Source,
			"retry_count": job.RetryCount,
			"error":       err.Error(),
		})
		return
	}

	job.RetryCount++
	job.Status = queue.JobStatusRetrying
	q.save(ctx, job)

	backoff := RetryDelay(q.opts.RetryBaseDelay, job.RetryCount)
	q.logger.Warn("Job failed, scheduling retry", map[string]any{
		"job_id":      job.JobID,
		"retry_count": job.RetryCount,
		"max_retries": job.MaxRetries,
		"retry_after": backoff.String(),
		"error":       err.Error(),
	})

	time.AfterFunc(backoff, func() {
		job.Status = queue.JobStatusPending
		job.StartedAt = nil
		job.CompletedAt = nil

		// ctx may already be cancelled by the time the retry fires
		if err := q.PublishIngestMessage(context.Background(), job); err != nil {
			job.Status = queue.JobStatusFailed
			job.Error = fmt.Sprintf("retry not enqueued: %v", err)
			q.save(context.Background(), job)
		}
	})
}

// RetryDelay returns base doubled for every attempt after the first, capped at one minute.
func RetryDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}

func (q *Queue) save(ctx context.Context, job *queue.IngestMessageJob) {
	if q.store == nil {
		return
	}
	if err := q.store.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to save job status", map[string]any{
			"job_id": job.JobID,
			"status": job.Status,
			"error":  err.Error(),
		})
	}
}

func (q *Queue) isClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Stop closes the queue and waits for in-flight jobs to complete.
// Jobs still buffered are left pending.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("Job queue stopped", map[string]any{
			"pending": len(q.jobChan),
		})
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements queue.Publisher.
func (q *Queue) Close() error {
	return q.Stop(context.Background())
}

var (
	_ queue.Publisher = (*Queue)(nil)
	_ queue.Consumer  = (*Queue)(nil)
)
