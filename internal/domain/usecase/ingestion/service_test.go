package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/parser"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
	mcore "github.com/amirhossein-jamali/sms-ledger/mocks/port/core"
	mnotif "github.com/amirhossein-jamali/sms-ledger/mocks/port/notification"
	mpers "github.com/amirhossein-jamali/sms-ledger/mocks/port/persistence"
	mqueue "github.com/amirhossein-jamali/sms-ledger/mocks/port/queue"
)

type serviceMocks struct {
	repo      *mpers.MockTransactionRepository
	publisher *mqueue.MockPublisher
	jobStore  *mqueue.MockJobStore
	notifier  *mnotif.MockNotifier
	guard     *mnotif.MockDeliveryGuard
	locker    *mcore.MockLocker
}

func newTestService(t *testing.T) (*Service, *serviceMocks) {
	m := &serviceMocks{
		repo:      mpers.NewMockTransactionRepository(t),
		publisher: mqueue.NewMockPublisher(t),
		jobStore:  mqueue.NewMockJobStore(t),
		notifier:  mnotif.NewMockNotifier(t),
		guard:     mnotif.NewMockDeliveryGuard(t),
		locker:    mcore.NewMockLocker(t),
	}
	svc := NewIngestionService(
		parser.NewEngine(),
		m.repo,
		m.publisher,
		m.jobStore,
		m.notifier,
		m.guard,
		m.locker,
		mcore.NewMockTimeProvider(t),
		mcore.NewMockLogger(t).AllowAll(),
		noop.NewTracerProvider().Tracer("test"),
		Config{MaxRetries: 3, NotificationTTL: time.Hour},
	)
	return svc, m
}

func (m *serviceMocks) expectStore(exists bool) {
	m.repo.On("Exists", mock.Anything, canteenID).Return(exists, nil).Once()
	m.repo.On("FindByReferenceID", mock.Anything, "123").Return(nil, errs.ErrTransactionNotFound).Once()
	m.repo.On("Upsert", mock.Anything, mock.AnythingOfType("*entity.Transaction")).Return(nil).Once()
}

func TestService_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("stored transaction is announced", func(t *testing.T) {
		svc, m := newTestService(t)
		m.expectStore(false)
		m.guard.On("Claim", mock.Anything, canteenID, time.Hour).Return(true, nil).Once()
		m.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.ID == canteenID
		})).Return(nil).Once()

		result, err := svc.Ingest(ctx, canteenMessage)

		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeStored, result.Outcome)
		assert.True(t, result.Notified)
		assert.Empty(t, result.NotifyError)
	})

	t.Run("notification failure does not fail ingestion", func(t *testing.T) {
		svc, m := newTestService(t)
		m.expectStore(false)
		m.guard.On("Claim", mock.Anything, canteenID, time.Hour).Return(true, nil).Once()
		m.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
		m.guard.On("Release", mock.Anything, canteenID).Return(nil).Once()

		result, err := svc.Ingest(ctx, canteenMessage)

		require.NoError(t, err)
		assert.False(t, result.Notified)
		assert.Contains(t, result.NotifyError, errs.ErrNotificationFailed.Error())
	})

	t.Run("re-ingested transaction is not announced twice", func(t *testing.T) {
		svc, m := newTestService(t)
		m.expectStore(true)
		m.guard.On("Claim", mock.Anything, canteenID, time.Hour).Return(false, nil).Once()

		result, err := svc.Ingest(ctx, canteenMessage)

		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeReplaced, result.Outcome)
		assert.False(t, result.Notified)
	})

	t.Run("rejected message is neither stored nor announced", func(t *testing.T) {
		svc, _ := newTestService(t)

		result, err := svc.Ingest(ctx, entity.Message{Sender: "VM-HDFCBK", Body: "Your OTP is 123456", OccurredAt: canteenAt})

		require.NoError(t, err)
		assert.Equal(t, usecase.OutcomeRejected, result.Outcome)
		assert.False(t, result.Notified)
	})
}

func TestService_HandleJob(t *testing.T) {
	ctx := context.Background()

	t.Run("scanned message is stored silently", func(t *testing.T) {
		svc, m := newTestService(t)
		m.expectStore(false)

		job := queue.NewIngestMessageJob(canteenMessage, queue.SourceScan)
		err := svc.HandleJob(ctx, job)

		require.NoError(t, err)
		assert.Equal(t, string(usecase.OutcomeStored), job.Outcome)
		assert.Equal(t, canteenID, job.TransactionID)
		m.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("live message is announced", func(t *testing.T) {
		svc, m := newTestService(t)
		m.expectStore(false)
		m.guard.On("Claim", mock.Anything, canteenID, time.Hour).Return(true, nil).Once()
		m.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

		job := queue.NewIngestMessageJob(canteenMessage, queue.SourceLive)
		require.NoError(t, svc.HandleJob(ctx, job))
		assert.Equal(t, canteenID, job.TransactionID)
	})

	t.Run("storage failure is returned for retry", func(t *testing.T) {
		svc, m := newTestService(t)
		m.repo.On("Exists", mock.Anything, canteenID).Return(false, errs.ErrDatabaseConnection).Once()

		job := queue.NewIngestMessageJob(canteenMessage, queue.SourceLive)
		err := svc.HandleJob(ctx, job)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Empty(t, job.Outcome)
	})

	t.Run("rejection completes the job", func(t *testing.T) {
		svc, _ := newTestService(t)

		job := queue.NewIngestMessageJob(entity.Message{Body: "short", OccurredAt: canteenAt}, queue.SourceLive)
		require.NoError(t, svc.HandleJob(ctx, job))
		assert.Equal(t, string(usecase.OutcomeRejected), job.Outcome)
		assert.Empty(t, job.TransactionID)
	})

	t.Run("invalid message completes the job without retry", func(t *testing.T) {
		svc, _ := newTestService(t)

		oversized := entity.Message{
			Sender:     "VM-HDFCBK",
			Body:       strings.Repeat("x", DefaultMaxBodyLength+1),
			OccurredAt: canteenAt,
		}
		job := queue.NewIngestMessageJob(oversized, queue.SourceScan)

		require.NoError(t, svc.HandleJob(ctx, job))
		assert.Equal(t, string(usecase.OutcomeRejected), job.Outcome)
		assert.Empty(t, job.TransactionID)
	})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues a live job", func(t *testing.T) {
		svc, m := newTestService(t)
		m.publisher.On("PublishIngestMessage", mock.Anything, mock.MatchedBy(func(job *queue.IngestMessageJob) bool {
			return job.Source == queue.SourceLive && job.MaxRetries == 3 && job.Body == canteenBody
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*queue.IngestMessageJob).JobID = "job-1"
		}).Return(nil).Once()

		jobID, err := svc.Submit(ctx, canteenMessage)

		require.NoError(t, err)
		assert.Equal(t, "job-1", jobID)
	})

	t.Run("invalid message is not enqueued", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Submit(ctx, entity.Message{Body: canteenBody})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("closed queue", func(t *testing.T) {
		svc, m := newTestService(t)
		m.publisher.On("PublishIngestMessage", mock.Anything, mock.Anything).Return(errs.ErrQueueClosed).Once()

		_, err := svc.Submit(ctx, canteenMessage)

		assert.ErrorIs(t, err, errs.ErrQueueClosed)
	})
}

func TestService_Preview(t *testing.T) {
	svc, _ := newTestService(t)

	tx, err := svc.Preview(canteenMessage)

	require.NoError(t, err)
	assert.Equal(t, canteenID, tx.ID)
	assert.Equal(t, entity.CategoryFood, tx.Category)

	_, err = svc.Preview(entity.Message{Body: "Hello", OccurredAt: canteenAt})
	assert.True(t, errs.IsRejection(err))
}

func TestService_GetJob(t *testing.T) {
	svc, m := newTestService(t)
	job := &queue.IngestMessageJob{JobID: "job-1", Status: queue.JobStatusCompleted}
	m.jobStore.On("GetJob", mock.Anything, "job-1").Return(job, nil).Once()
	m.jobStore.On("GetJob", mock.Anything, "missing").Return(nil, errs.ErrJobNotFound).Once()

	got, err := svc.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Same(t, job, got)

	_, err = svc.GetJob(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrJobNotFound)
}
