package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Message     *handler.MessageHandler
	Transaction *handler.TransactionHandler
	Summary     *handler.SummaryHandler
	Report      *handler.ReportHandler
	Health      *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")
	{
		messages := v1.Group("/messages")
		messages.POST("", h.Message.Submit)
		messages.POST("/parse", h.Message.Parse)
		messages.POST("/scan", h.Message.Scan)

		v1.GET("/jobs/:id", h.Message.GetJob)

		transactions := v1.Group("/transactions")
		transactions.GET("", h.Transaction.List)
		transactions.POST("", h.Transaction.Create)
		transactions.DELETE("", h.Transaction.DeleteAll)
		transactions.GET("/reference/:referenceId", h.Transaction.GetByReference)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.DELETE("/:id", h.Transaction.Delete)

		v1.GET("/balance", h.Summary.GetBalance)
		v1.GET("/summary/expenses", h.Summary.GetExpenseSeries)

		reports := v1.Group("/reports")
		reports.GET("/transactions.xlsx", h.Report.Export)
		reports.POST("/archive", h.Report.Archive)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, tracer trace.Tracer, allowedOrigins []string, isProduction bool) {
	// Recovery first so panics in later middleware are still caught
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Tracing(tracer))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(allowedOrigins, isProduction))
}
