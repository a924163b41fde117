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

// entityHandler handles HTTP requests related to business entities.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

func newEntityHandler(es portssvc.EntitySvcFacade) *entityHandler {
	return &entityHandler{entityService: es}
}

// registerEntityRoutes registers entity routes and all entity-scoped resources.
func registerEntityRoutes(
	rg *gin.RouterGroup,
	entitySvc portssvc.EntitySvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
	paymentSvc portssvc.PaymentSvcFacade,
	transferSvc portssvc.TransferSvcFacade,
	adjustmentSvc portssvc.AdjustmentSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	reportingSvc portssvc.ReportingSvcFacade,
) {
	h := newEntityHandler(entitySvc)

	entities := rg.Group("/entities")
	{
		entities.POST("", h.createEntity)
		entities.GET("", h.listEntities)
		entities.GET("/:entity_id", h.getEntity)
	}

	scoped := entities.Group("/:entity_id")
	{
		registerAccountRoutes(scoped, accountSvc, ledgerSvc)
		registerPaymentRoutes(scoped, paymentSvc)
		registerTransferRoutes(scoped, transferSvc)
		registerAdjustmentRoutes(scoped, adjustmentSvc, ledgerSvc)
		registerPeriodRoutes(scoped, periodSvc)
		registerReportingRoutes(scoped, reportingSvc)
	}
}

// createEntity godoc
// @Summary Create a business entity
// @Description Registers a new business entity whose treasury will be tracked
// @Tags entities
// @Accept json
// @Produce json
// @Param entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entity"
// @Security BearerAuth
// @Router /entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entity, err := h.entityService.CreateEntity(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating entity", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create entity in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entity"})
		}
		return
	}

	logger.Info("Entity created successfully", slog.String("entity_id", entity.EntityID))
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// getEntity godoc
// @Summary Get a business entity by ID
// @Tags entities
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entity"
// @Security BearerAuth
// @Router /entities/{entity_id} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	entity, err := h.entityService.GetEntityByID(c.Request.Context(), entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		} else {
			logger.Error("Failed to get entity from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entity"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToEntityResponse(entity))
}

// listEntities godoc
// @Summary List business entities
// @Tags entities
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListEntitiesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entities"
// @Security BearerAuth
// @Router /entities [get]
func (h *entityHandler) listEntities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entities, err := h.entityService.ListEntities(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list entities from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entities"})
		return
	}

	responses := make([]dto.EntityResponse, len(entities))
	for i, e := range entities {
		responses[i] = dto.ToEntityResponse(&e)
	}
	c.JSON(http.StatusOK, dto.ListEntitiesResponse{Entities: responses})
}
