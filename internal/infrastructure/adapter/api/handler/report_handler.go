package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
)

// ReportHandler serves spreadsheet exports
type ReportHandler struct {
	ledger       usecase.LedgerUseCase
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewReportHandler creates a new report handler instance
func NewReportHandler(ledger usecase.LedgerUseCase, logger coreport.Logger, timeProvider coreport.TimeProvider) *ReportHandler {
	return &ReportHandler{
		ledger:       ledger,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Export handles GET /api/v1/reports/transactions.xlsx
func (h *ReportHandler) Export(c *gin.Context) {
	query, err := parseTransactionQuery(c)
	if err != nil {
		respondError(c, h.logger, "export transactions", err)
		return
	}

	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.ledger.ExportTransactions(c.Request.Context(), &buf, query); err != nil {
		respondError(c, h.logger, "export transactions", err)
		return
	}

	contentType, extension := h.ledger.ReportFormat()
	filename := fmt.Sprintf("transactions-%s%s", h.timeProvider.Now().Format("20060102-150405"), extension)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Archive handles POST /api/v1/reports/archive
func (h *ReportHandler) Archive(c *gin.Context) {
	query, err := parseTransactionQuery(c)
	if err != nil {
		respondError(c, h.logger, "archive report", err)
		return
	}

	location, err := h.ledger.ArchiveReport(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "archive report", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ArchiveResponse{Location: location})
}
