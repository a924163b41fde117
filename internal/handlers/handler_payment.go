package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasaops/treasury/internal/apperrors"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// paymentHandler handles HTTP requests related to document payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to document payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentSvc portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentSvc)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.payDocument)
		payments.GET("/documents/:document_id", h.getPaymentStatus)
	}
}

// payDocument godoc
// @Summary Record a document payment
// @Description Posts one ledger movement for the document and returns the derived reconciliation state. Resubmitting the same idempotency key replays the prior result.
// @Tags payments
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param payment body dto.PayDocumentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResultResponse
// @Failure 400 {object} map[string]string "Invalid input or non-positive amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Idempotency key reused for a different operation"
// @Failure 422 {object} map[string]string "Period locked"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /entities/{entity_id}/payments [post]
func (h *paymentHandler) payDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var req dto.PayDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.paymentService.PayDocument(c.Request.Context(), entityID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// getPaymentStatus godoc
// @Summary Get a document's payment status
// @Description Recomputes the document's reconciliation state from the movement log
// @Tags payments
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param document_id path string true "Document ID"
// @Param totalDue query string true "Total amount due for the document"
// @Success 200 {object} dto.PaymentResultResponse
// @Failure 400 {object} map[string]string "Missing or invalid totalDue"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to derive payment status"
// @Security BearerAuth
// @Router /entities/{entity_id}/payments/documents/{document_id} [get]
func (h *paymentHandler) getPaymentStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	documentID := c.Param("document_id")

	var params dto.GetPaymentStatusParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.paymentService.GetPaymentStatus(c.Request.Context(), entityID, documentID, params.TotalDue)
	if err != nil {
		logger.Error("Failed to derive payment status", slog.String("error", err.Error()), slog.String("document_id", documentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive payment status"})
		return
	}

	c.JSON(http.StatusOK, result)
}
