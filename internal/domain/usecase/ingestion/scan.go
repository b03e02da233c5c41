package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

const (
	scanLockKey = "scan:historical"

	// DefaultScanLockTTL is how long a scan may hold the lock before it expires
	DefaultScanLockTTL = 5 * time.Minute
)

// HistoricalScanner enqueues inbox messages from the scan window, newest first
type HistoricalScanner struct {
	publisher    queue.Publisher
	validator    *MessageValidator
	locker       coreport.Locker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	lockTTL      time.Duration
	maxRetries   int
}

// NewHistoricalScanner creates a new HistoricalScanner
func NewHistoricalScanner(
	publisher queue.Publisher,
	validator *MessageValidator,
	locker coreport.Locker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	lockTTL time.Duration,
	maxRetries int,
) *HistoricalScanner {
	if lockTTL <= 0 {
		lockTTL = DefaultScanLockTTL
	}
	return &HistoricalScanner{
		publisher:    publisher,
		validator:    validator,
		locker:       locker,
		timeProvider: timeProvider,
		logger:       logger,
		lockTTL:      lockTTL,
		maxRetries:   maxRetries,
	}
}

// StartOfYear returns midnight of January 1st in t's location
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// WindowStart returns the lower bound of a scan in epoch millis
func (s *HistoricalScanner) WindowStart(since *int64) int64 {
	if since != nil {
		return *since
	}
	now := s.timeProvider.Now().In(s.timeProvider.Location())
	return StartOfYear(now).UnixMilli()
}

// Scan enqueues every valid message at or after the window start. Only one
// scan may enqueue at a time.
func (s *HistoricalScanner) Scan(ctx context.Context, req usecase.ScanRequest) (*usecase.ScanResult, error) {
	lock, err := s.locker.Obtain(ctx, scanLockKey, s.lockTTL)
	if err != nil {
		if errors.Is(err, errs.ErrLockNotObtained) {
			return nil, errs.ErrScanInProgress
		}
		return nil, fmt.Errorf("failed to obtain scan lock: %w", err)
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			s.logger.Warn("Failed to release scan lock", map[string]any{"error": err.Error()})
		}
	}()

	windowStart := s.WindowStart(req.Since)
	result := &usecase.ScanResult{WindowStart: windowStart}

	selected := make([]entity.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		if msg.OccurredAt < windowStart {
			result.Skipped++
			continue
		}
		// Shape errors are permanent, retrying the job would never help
		if err := s.validator.ValidateMessage(msg); err != nil {
			s.logger.Debug("Scanned message is invalid", map[string]any{
				"sender":      msg.Sender,
				"occurred_at": msg.OccurredAt,
				"error":       err.Error(),
			})
			result.Invalid++
			continue
		}
		selected = append(selected, msg)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].OccurredAt > selected[j].OccurredAt
	})
	result.JobIDs = make([]string, 0, len(selected))

	for _, msg := range selected {
		job := queue.NewIngestMessageJob(msg, queue.SourceScan)
		job.MaxRetries = s.maxRetries
		if err := s.publisher.PublishIngestMessage(ctx, job); err != nil {
			s.logger.Error("Historical scan interrupted", map[string]any{
				"enqueued": result.Enqueued,
				"error":    err.Error(),
			})
			return result, fmt.Errorf("failed to enqueue scanned message: %w", err)
		}
		result.Enqueued++
		result.JobIDs = append(result.JobIDs, job.JobID)
	}

	s.logger.Info("Historical scan enqueued", map[string]any{
		"window_start": windowStart,
		"enqueued":     result.Enqueued,
		"skipped":      result.Skipped,
		"invalid":      result.Invalid,
	})

	return result, nil
}
