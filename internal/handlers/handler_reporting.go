package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kasaops/treasury/internal/apperrors"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// reportingHandler handles read-only reporting requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingSvc portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingSvc)

	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Get the treasury summary for one period
// @Description Computes income/expense/net totals and per-account balances from the movement log
// @Tags reporting
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Missing or invalid year/month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entity not found"
// @Failure 500 {object} map[string]string "Failed to compute summary"
// @Security BearerAuth
// @Router /entities/{entity_id}/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), entityID, params.Year, time.Month(params.Month))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		} else {
			logger.Error("Failed to compute summary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
