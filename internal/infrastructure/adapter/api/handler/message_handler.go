package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/sms-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/sms-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/queue"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/sms-ledger/internal/infrastructure/adapter/api/dto"
)

// MessageHandler handles message ingestion requests
type MessageHandler struct {
	ingestion usecase.IngestionUseCase
	logger    coreport.Logger
}

// NewMessageHandler creates a new message handler instance
func NewMessageHandler(ingestion usecase.IngestionUseCase, logger coreport.Logger) *MessageHandler {
	return &MessageHandler{
		ingestion: ingestion,
		logger:    logger,
	}
}

// Submit handles POST /api/v1/messages
func (h *MessageHandler) Submit(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "submit message", bindError(err))
		return
	}

	jobID, err := h.ingestion.Submit(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondError(c, h.logger, "submit message", err)
		return
	}

	c.JSON(http.StatusAccepted, dto.SubmitResponse{
		JobID:  jobID,
		Status: string(queue.JobStatusPending),
	})
}

// Parse handles POST /api/v1/messages/parse. Nothing is stored or announced.
func (h *MessageHandler) Parse(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "parse message", bindError(err))
		return
	}

	txn, err := h.ingestion.Preview(req.ToEntity())
	if err != nil {
		if errs.IsRejection(err) {
			c.JSON(http.StatusOK, dto.ParseResponse{
				Accepted: false,
				Reason:   rejectionReason(err),
			})
			return
		}
		respondError(c, h.logger, "parse message", err)
		return
	}

	resp := dto.FromTransaction(txn)
	c.JSON(http.StatusOK, dto.ParseResponse{
		Accepted:    true,
		Transaction: &resp,
	})
}

// Scan handles POST /api/v1/messages/scan
func (h *MessageHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, "scan messages", bindError(err))
		return
	}

	result, err := h.ingestion.Scan(c.Request.Context(), req.ToUseCase())
	if err != nil {
		respondError(c, h.logger, "scan messages", err)
		return
	}

	c.JSON(http.StatusAccepted, dto.FromScanResult(result))
}

// GetJob handles GET /api/v1/jobs/:id
func (h *MessageHandler) GetJob(c *gin.Context) {
	job, err := h.ingestion.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get job", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromJob(job))
}
