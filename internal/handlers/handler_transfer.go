package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kasaops/treasury/internal/apperrors"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/core/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{transferService: ts}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferSvc portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferSvc)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.GET("/:transfer_id", h.getTransfer)
	}
}

// createTransfer godoc
// @Summary Transfer money between two accounts
// @Description Atomically posts a negative movement on the source account and a positive one on the destination
// @Tags transfers
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input, currency mismatch or insufficient funds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Period locked"
// @Failure 500 {object} map[string]string "Failed to create transfer"
// @Security BearerAuth
// @Router /entities/{entity_id}/transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transfer, err := h.transferService.Transfer(c.Request.Context(), entityID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount),
			errors.Is(err, apperrors.ErrCurrencyMismatch),
			errors.Is(err, services.ErrSameAccountTransfer),
			errors.Is(err, apperrors.ErrInsufficientFunds),
			errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create transfer in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transfer"})
		}
		return
	}

	logger.Info("Transfer created successfully", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// getTransfer godoc
// @Summary Get a transfer by ID
// @Tags transfers
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param transfer_id path string true "Transfer ID"
// @Success 200 {object} dto.TransferResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transfer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transfer"
// @Security BearerAuth
// @Router /entities/{entity_id}/transfers/{transfer_id} [get]
func (h *transferHandler) getTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	transferID := c.Param("transfer_id")

	transfer, err := h.transferService.GetTransferByID(c.Request.Context(), entityID, transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		} else {
			logger.Error("Failed to get transfer from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferResponse(transfer))
}
