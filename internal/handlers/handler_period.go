package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kasaops/treasury/internal/apperrors"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/core/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodSvc portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodSvc)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.GET("/:year/:month", h.getPeriod)
		periods.POST("/close", h.closePeriod)
		periods.POST("/lock", h.lockPeriod)
		periods.POST("/reopen", h.reopenPeriod)
	}
}

// listPeriods godoc
// @Summary List stored period records for an entity
// @Tags periods
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), entityID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		logger.Error("Failed to list periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	responses := make([]dto.PeriodResponse, len(periods))
	for i, p := range periods {
		responses[i] = dto.ToPeriodResponse(&p)
	}
	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: responses})
}

// getPeriod godoc
// @Summary Get one period's status
// @Description Returns the stored period record, or an OPEN record when none exists
// @Tags periods
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods/{year}/{month} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), entityID, year, time.Month(month))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		} else {
			logger.Error("Failed to get period from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Move a period into the CLOSING grace state
// @Tags periods
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param period body dto.ClosePeriodRequest true "Period to close"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.transition(c, func(actor string) (*dto.PeriodResponse, error) {
		period, err := h.periodService.ClosePeriod(c.Request.Context(), c.Param("entity_id"), req.Year, req.Month, actor)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPeriodResponse(period)
		return &resp, nil
	})
}

// lockPeriod godoc
// @Summary Lock a period against all postings dated inside it
// @Tags periods
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param period body dto.LockPeriodRequest true "Period to lock with reason"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to lock period"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	var req dto.LockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.transition(c, func(actor string) (*dto.PeriodResponse, error) {
		period, err := h.periodService.LockPeriod(c.Request.Context(), c.Param("entity_id"), req.Year, req.Month, actor, req.Reason)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPeriodResponse(period)
		return &resp, nil
	})
}

// reopenPeriod godoc
// @Summary Reopen a locked period
// @Description Only honored when the engine is configured to allow reopening
// @Tags periods
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param period body dto.ReopenPeriodRequest true "Period to reopen with reason"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Reopening disabled or invalid transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to reopen period"
// @Security BearerAuth
// @Router /entities/{entity_id}/periods/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.transition(c, func(actor string) (*dto.PeriodResponse, error) {
		period, err := h.periodService.ReopenPeriod(c.Request.Context(), c.Param("entity_id"), req.Year, req.Month, actor, req.Reason)
		if err != nil {
			return nil, err
		}
		resp := dto.ToPeriodResponse(period)
		return &resp, nil
	})
}

// transition runs one period state change and maps its errors to HTTP codes.
func (h *periodHandler) transition(c *gin.Context, fn func(actor string) (*dto.PeriodResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := fn(actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		case errors.Is(err, services.ErrInvalidPeriodTransition), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to change period status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change period status"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
