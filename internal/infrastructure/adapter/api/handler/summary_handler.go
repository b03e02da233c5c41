package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
)

// SummaryHandler serves balance and expense chart data
type SummaryHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewSummaryHandler creates a new summary handler instance
func NewSummaryHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *SummaryHandler {
	return &SummaryHandler{
		ledger: ledger,
		logger: logger,
	}
}

// GetBalance handles GET /api/v1/balance
func (h *SummaryHandler) GetBalance(c *gin.Context) {
	balance, err := h.ledger.GetBalance(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "get balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBalance(balance))
}

// GetExpenseSeries handles GET /api/v1/summary/expenses?mode=monthly|yearly&offset=N
func (h *SummaryHandler) GetExpenseSeries(c *gin.Context) {
	mode, err := entity.ParseSeriesMode(c.Query("mode"))
	if err != nil {
		respondError(c, h.logger, "expense series", err)
		return
	}

	offset, err := optionalInt(c, "offset")
	if err != nil {
		respondError(c, h.logger, "expense series", err)
		return
	}

	series, err := h.ledger.ExpenseSeries(c.Request.Context(), mode, offset)
	if err != nil {
		respondError(c, h.logger, "expense series", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromExpenseSeries(series))
}
