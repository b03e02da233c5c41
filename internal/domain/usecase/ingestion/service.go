package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
)

// Config holds the tunables of the ingestion pipeline
type Config struct {
	MaxBodyLength   int
	MaxSenderLength int
	MaxRetries      int
	NotificationTTL time.Duration
	ScanLockTTL     time.Duration
}

// Service ties together validation, parsing, storage, alerts and the job queue
type Service struct {
	processor  *MessageProcessor
	validator  *MessageValidator
	dispatcher *NotificationDispatcher
	scanner    *HistoricalScanner
	parser     usecase.MessageParser
	publisher  queue.Publisher
	jobStore   queue.JobStore
	tracer     trace.Tracer
	logger     coreport.Logger
	maxRetries int
}

var _ usecase.IngestionUseCase = (*Service)(nil)

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	parser usecase.MessageParser,
	transactionRepo persistence.TransactionRepository,
	publisher queue.Publisher,
	jobStore queue.JobStore,
	notifier notification.Notifier,
	guard notification.DeliveryGuard,
	locker coreport.Locker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	tracer trace.Tracer,
	cfg Config,
) *Service {
	validator := NewMessageValidator(cfg.MaxBodyLength, cfg.MaxSenderLength)
	idempotencyHandler := NewIdempotencyHandler(transactionRepo, logger)
	processor := NewMessageProcessor(parser, validator, idempotencyHandler, transactionRepo, logger)
	dispatcher := NewNotificationDispatcher(notifier, guard, cfg.NotificationTTL, logger)
	scanner := NewHistoricalScanner(publisher, validator, locker, timeProvider, logger, cfg.ScanLockTTL, cfg.MaxRetries)

	return &Service{
		processor:  processor,
		validator:  validator,
		dispatcher: dispatcher,
		scanner:    scanner,
		parser:     parser,
		publisher:  publisher,
		jobStore:   jobStore,
		tracer:     tracer,
		logger:     logger,
		maxRetries: cfg.MaxRetries,
	}
}

// Ingest processes a live message synchronously and announces it when stored
func (s *Service) Ingest(ctx context.Context, msg entity.Message) (*usecase.IngestResult, error) {
	return s.ingest(ctx, msg, queue.SourceLive)
}

func (s *Service) ingest(ctx context.Context, msg entity.Message, source queue.Source) (*usecase.IngestResult, error) {
	ctx, span := s.tracer.Start(ctx, "ingest.message", trace.WithAttributes(
		attribute.String("message.sender", msg.Sender),
		attribute.String("message.source", string(source)),
		attribute.Int64("message.occurred_at", msg.OccurredAt),
	))
	defer span.End()

	result, err := s.processor.Process(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("ingest.outcome", string(result.Outcome)))

	// Historical messages are backfilled silently
	if result.Transaction == nil || source != queue.SourceLive {
		return result, nil
	}

	span.SetAttributes(attribute.String("transaction.id", result.Transaction.ID))
	notified, err := s.dispatcher.Dispatch(ctx, result.Transaction)
	if err != nil {
		span.RecordError(err)
		result.NotifyError = err.Error()
	}
	result.Notified = notified

	return result, nil
}

// Submit validates and enqueues a live message
func (s *Service) Submit(ctx context.Context, msg entity.Message) (string, error) {
	if err := s.validator.ValidateMessage(msg); err != nil {
		return "", fmt.Errorf("invalid message: %w", err)
	}

	job := queue.NewIngestMessageJob(msg, queue.SourceLive)
	job.MaxRetries = s.maxRetries
	if err := s.publisher.PublishIngestMessage(ctx, job); err != nil {
		return "", fmt.Errorf("failed to enqueue message: %w", err)
	}

	s.logger.Debug("Message enqueued", map[string]any{
		"job_id": job.JobID,
		"sender": msg.Sender,
	})
	return job.JobID, nil
}

// Scan enqueues a historical batch
func (s *Service) Scan(ctx context.Context, req usecase.ScanRequest) (*usecase.ScanResult, error) {
	return s.scanner.Scan(ctx, req)
}

// Preview parses a message without side effects
func (s *Service) Preview(msg entity.Message) (*entity.Transaction, error) {
	if err := s.validator.ValidateMessage(msg); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	return s.parser.Parse(msg)
}

// GetJob returns a submitted job
func (s *Service) GetJob(ctx context.Context, jobID string) (*queue.IngestMessageJob, error) {
	return s.jobStore.GetJob(ctx, jobID)
}

// HandleJob runs a queued job through the pipeline. Only storage failures are
// returned, so neither an invalid message nor an undeliverable alert is retried.
func (s *Service) HandleJob(ctx context.Context, job *queue.IngestMessageJob) error {
	result, err := s.ingest(ctx, job.Message(), job.Source)
	if errors.Is(err, errs.ErrInvalidRequest) {
		s.logger.Warn("Dropping invalid queued message", map[string]any{
			"job_id": job.JobID,
			"error":  err.Error(),
		})
		job.Outcome = string(usecase.OutcomeRejected)
		return nil
	}
	if err != nil {
		return err
	}

	job.Outcome = string(result.Outcome)
	if result.Transaction != nil {
		job.TransactionID = result.Transaction.ID
	}
	return nil
}
