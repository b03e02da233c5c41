package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/parser"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	notificationport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/notification"
	reportport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/report"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/usecase/ingestion"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/lock"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/notification"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/queue/inmemory"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/report"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction())
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))

	tp, err := timeProvider.NewRealTimeProviderIn(cfg.Ingestion.TimeZone)
	if err != nil {
		log.Fatalf("Invalid ingestion.timeZone %q: %v", cfg.Ingestion.TimeZone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)

	// Coordination: scan lock and notification dedup
	var (
		locker coreport.Locker
		guard  notificationport.DeliveryGuard
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Error("Failed to connect to redis", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
			os.Exit(1)
		}
		locker = lock.NewRedisLocker(redisClient, appLogger)
		guard = notification.NewRedisDeliveryGuard(redisClient)
	} else {
		locker = lock.NewMemoryLocker(tp)
		guard = notification.NewMemoryDeliveryGuard(tp)
	}

	// Notifications
	notifiers := []notificationport.Notifier{notification.NewLogNotifier(appLogger)}
	if cfg.PubSub.Enabled {
		pubsubNotifier, err := notification.NewPubSubNotifier(ctx, notification.PubSubConfig{
			ProjectID:       cfg.PubSub.ProjectID,
			TopicID:         cfg.PubSub.TopicID,
			CredentialsJSON: cfg.PubSub.CredentialsJSON,
		}, appLogger)
		if err != nil {
			appLogger.Error("Failed to create Pub/Sub notifier", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer pubsubNotifier.Close()
		notifiers = append(notifiers, pubsubNotifier)
	}
	notifier := notification.NewMultiNotifier(notifiers...)

	// Reports
	var archive reportport.Archive
	if cfg.Report.Bucket != "" {
		gcsArchive, err := report.NewGCSArchive(ctx, cfg.Report.Bucket, cfg.Report.CredentialsJSON, appLogger)
		if err != nil {
			appLogger.Error("Failed to create report archive", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer gcsArchive.Close()
		archive = gcsArchive
	}
	reportWriter := report.NewExcelWriter(tp.Location())

	tracer := newTracer(cfg)

	// Job queue
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(inmemory.Options{
		Workers:        cfg.Ingestion.Workers,
		BufferSize:     cfg.Ingestion.BufferSize,
		RetryBaseDelay: cfg.Ingestion.RetryBaseDelay,
	}, jobStore, appLogger, tp)

	// Use cases
	ingestionService := ingestion.NewIngestionService(
		parser.NewEngine(),
		transactionRepo,
		jobQueue,
		jobStore,
		notifier,
		guard,
		locker,
		tp,
		appLogger,
		tracer,
		ingestion.Config{
			MaxBodyLength:   cfg.Ingestion.MaxBodyLength,
			MaxSenderLength: cfg.Ingestion.MaxSenderLength,
			MaxRetries:      cfg.Ingestion.MaxRetries,
			NotificationTTL: cfg.Ingestion.NotificationTTL,
			ScanLockTTL:     cfg.Ingestion.ScanLockTTL,
		},
	)
	ledgerService := ledger.NewLedgerService(transactionRepo, reportWriter, archive, tp, appLogger)

	// Workers outlive the signal context so in-flight jobs can finish during shutdown
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	if err := jobQueue.Start(workerCtx, ingestionService.HandleJob); err != nil {
		appLogger.Error("Failed to start ingestion workers", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// HTTP
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tracer, cfg.Server.AllowedOrigins, cfg.IsProduction())
	routes.SetupRoutes(router, routes.Handlers{
		Message:     handler.NewMessageHandler(ingestionService, appLogger),
		Transaction: handler.NewTransactionHandler(ledgerService, appLogger),
		Summary:     handler.NewSummaryHandler(ledgerService, appLogger),
		Report:      handler.NewReportHandler(ledgerService, appLogger, tp),
		Health:      handler.NewHealthHandler(dbManager, appLogger),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":      server.Addr,
			"env":       cfg.Environment,
			"workers":   cfg.Ingestion.Workers,
			"redis":     cfg.Redis.Enabled,
			"pubsub":    cfg.PubSub.Enabled,
			"archiving": archive != nil,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	// Drain in-flight ingestion jobs after the API stops accepting new ones
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		appLogger.Warn("Ingestion workers did not drain in time", map[string]any{"error": err.Error()})
	}
	cancelWorkers()

	appLogger.Info("Server exited gracefully", nil)
}

// newTracer returns the global OpenTelemetry tracer, or a no-op one when tracing is off
func newTracer(cfg *config.Config) trace.Tracer {
	if !cfg.Tracing.Enabled {
		return noop.NewTracerProvider().Tracer(cfg.Tracing.ServiceName)
	}
	return otel.Tracer(cfg.Tracing.ServiceName)
}
