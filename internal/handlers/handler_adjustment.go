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

// adjustmentHandler handles HTTP requests for corrective and undo operations.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
	ledgerService     portssvc.LedgerSvcFacade
}

func newAdjustmentHandler(as portssvc.AdjustmentSvcFacade, ls portssvc.LedgerSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{
		adjustmentService: as,
		ledgerService:     ls,
	}
}

// registerAdjustmentRoutes registers routes for adjustments, reversals and
// single-movement reads.
func registerAdjustmentRoutes(rg *gin.RouterGroup, adjustmentSvc portssvc.AdjustmentSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newAdjustmentHandler(adjustmentSvc, ledgerSvc)

	rg.POST("/adjustments", h.adjustBalance)

	movements := rg.Group("/movements")
	{
		movements.GET("/:movement_id", h.getMovement)
		movements.POST("/:movement_id/reverse", h.reverseMovement)
	}
}

// adjustBalance godoc
// @Summary Post a corrective adjustment
// @Description Appends a signed movement with a mandatory audit reason
// @Tags adjustments
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param adjustment body dto.AdjustBalanceRequest true "Adjustment details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input, zero amount or missing reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Period locked"
// @Failure 500 {object} map[string]string "Failed to post adjustment"
// @Security BearerAuth
// @Router /entities/{entity_id}/adjustments [post]
func (h *adjustmentHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.adjustmentService.AdjustBalance(c.Request.Context(), entityID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount),
			errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrAccountInactive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post adjustment in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post adjustment"})
		}
		return
	}

	logger.Info("Adjustment posted successfully", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// getMovement godoc
// @Summary Get a movement by ID
// @Tags movements
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param movement_id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve movement"
// @Security BearerAuth
// @Router /entities/{entity_id}/movements/{movement_id} [get]
func (h *adjustmentHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	movementID := c.Param("movement_id")

	movement, err := h.ledgerService.GetMovementByID(c.Request.Context(), entityID, movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to get movement from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMovementResponse(movement))
}

// reverseMovement godoc
// @Summary Reverse a movement
// @Description Appends the exact negation of the movement and links the pair. A movement can be reversed at most once.
// @Tags movements
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param movement_id path string true "Movement ID to reverse"
// @Param reversal body dto.ReverseMovementRequest true "Reversal posting date"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input or reversal of a reversal"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 409 {object} map[string]string "Movement already reversed"
// @Failure 422 {object} map[string]string "Period locked"
// @Failure 500 {object} map[string]string "Failed to reverse movement"
// @Security BearerAuth
// @Router /entities/{entity_id}/movements/{movement_id}/reverse [post]
func (h *adjustmentHandler) reverseMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	movementID := c.Param("movement_id")

	var req dto.ReverseMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.adjustmentService.ReverseMovement(c.Request.Context(), entityID, movementID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		case errors.Is(err, apperrors.ErrAlreadyReversed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrReversalOfReversal):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodLocked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse movement in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse movement"})
		}
		return
	}

	logger.Info("Movement reversed successfully",
		slog.String("original_movement_id", movementID),
		slog.String("reversal_movement_id", reversal.MovementID),
	)
	c.JSON(http.StatusCreated, dto.ToMovementResponse(reversal))
}
