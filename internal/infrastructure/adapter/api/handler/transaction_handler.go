package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles HTTP requests related to stored transactions
type TransactionHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledger: ledger,
		logger: logger,
	}
}

// List handles GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	query, err := parseTransactionQuery(c)
	if err != nil {
		respondError(c, h.logger, "list transactions", err)
		return
	}

	transactions, err := h.ledger.ListTransactions(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "list transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransactions(transactions))
}

// Get handles GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.ledger.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get transaction", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// GetByReference handles GET /api/v1/transactions/reference/:referenceId
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	txn, err := h.ledger.FindByReference(c.Request.Context(), c.Param("referenceId"))
	if err != nil {
		respondError(c, h.logger, "find by reference", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// Create handles POST /api/v1/transactions for manual entries
func (h *TransactionHandler) Create(c *gin.Context) {
	var req usecase.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "record manual transaction", bindError(err))
		return
	}

	txn, err := h.ledger.RecordManual(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "record manual transaction", err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTransaction(txn))
}

// Delete handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.ledger.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete transaction", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/v1/transactions
func (h *TransactionHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.ledger.ClearAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "clear transactions", err)
		return
	}

	h.logger.Info("All transactions cleared", map[string]any{"deleted": deleted})
	c.JSON(http.StatusOK, dto.DeleteAllResponse{Deleted: deleted})
}
