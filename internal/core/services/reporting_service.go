package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/middleware"
)

// reportingService exposes read-only rollups over the movement log. The
// heavy lifting is a single aggregate query in the reporting repository.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	entitySvc     portssvc.EntityReaderSvc
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, entitySvc portssvc.EntityReaderSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		entitySvc:     entitySvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Summary computes income/expense/net totals and per-account balances for
// one entity and period.
func (s *reportingService) Summary(ctx context.Context, entityID string, year int, month time.Month) (*domain.TreasurySummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entitySvc.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}

	summary, err := s.reportingRepo.SummarizePeriod(ctx, entityID, year, month)
	if err != nil {
		logger.Error("Failed to summarize period",
			slog.String("error", err.Error()),
			slog.String("entity_id", entityID),
			slog.Int("year", year),
			slog.Int("month", int(month)),
		)
		return nil, fmt.Errorf("failed to summarize period: %w", err)
	}
	return summary, nil
}
