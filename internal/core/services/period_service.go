package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portsrepo "github.com/kasaops/treasury/internal/core/ports/repositories"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/middleware"
)

var ErrInvalidPeriodTransition = errors.New("invalid period status transition")

// periodService implements the accounting-period lock guard. A period with
// no stored record is implicitly OPEN, so the common case (nothing locked
// yet) costs one indexed lookup that misses.
type periodService struct {
	periodRepo  portsrepo.PeriodRepositoryFacade
	entitySvc   portssvc.EntityReaderSvc
	allowReopen bool

	// autoLockDay is the default day of the following month on which a
	// period stops accepting postings. Zero disables auto-locking. A
	// per-period auto_lock_day overrides the default.
	autoLockDay int
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, entitySvc portssvc.EntityReaderSvc, allowReopen bool, autoLockDay int) portssvc.PeriodSvcFacade {
	return &periodService{
		periodRepo:  periodRepo,
		entitySvc:   entitySvc,
		allowReopen: allowReopen,
		autoLockDay: autoLockDay,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// AssertPostable returns nil when a movement dated `date` may be posted.
// The repository re-checks the period status inside the posting transaction;
// this service-level check exists to fail fast before any locks are taken.
func (s *periodService) AssertPostable(ctx context.Context, entityID string, date time.Time) error {
	year, month := domain.PeriodOf(date)

	period, err := s.periodRepo.FindPeriod(ctx, entityID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if s.autoLockExpired(year, month, 0) {
				return fmt.Errorf("%w: period %d-%02d auto-locked", apperrors.ErrPeriodLocked, year, int(month))
			}
			return nil
		}
		return fmt.Errorf("failed to check period status: %w", err)
	}

	if !period.Postable() {
		return fmt.Errorf("%w: period %d-%02d is locked", apperrors.ErrPeriodLocked, year, int(month))
	}
	if s.autoLockExpired(year, month, period.AutoLockDay) {
		return fmt.Errorf("%w: period %d-%02d auto-locked", apperrors.ErrPeriodLocked, year, int(month))
	}
	return nil
}

// autoLockExpired reports whether the period's auto-lock deadline has
// passed. A per-period day of zero falls back to the configured default;
// zero there as well disables auto-locking entirely.
func (s *periodService) autoLockExpired(year int, month time.Month, day int) bool {
	if day == 0 {
		day = s.autoLockDay
	}
	return domain.AutoLockExpired(year, month, day, time.Now())
}

// ClosePeriod moves a period into the CLOSING grace state.
func (s *periodService) ClosePeriod(ctx context.Context, entityID string, year int, month time.Month, actor string) (*domain.AccountingPeriod, error) {
	return s.transition(ctx, entityID, year, month, domain.PeriodClosing, actor, "")
}

// LockPeriod locks a period against all further postings dated inside it.
func (s *periodService) LockPeriod(ctx context.Context, entityID string, year int, month time.Month, actor string, reason string) (*domain.AccountingPeriod, error) {
	return s.transition(ctx, entityID, year, month, domain.PeriodLocked, actor, reason)
}

// ReopenPeriod reverts a locked period to OPEN. This deliberately bypasses
// the domain state machine and is only available when the engine is
// configured to allow it.
func (s *periodService) ReopenPeriod(ctx context.Context, entityID string, year int, month time.Month, actor string, reason string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !s.allowReopen {
		return nil, fmt.Errorf("%w: period reopening is disabled", apperrors.ErrValidation)
	}

	period, err := s.periodRepo.FindPeriod(ctx, entityID, year, month)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period %d-%02d is not locked", ErrInvalidPeriodTransition, year, int(month))
	}

	now := time.Now().UTC()
	if err := s.periodRepo.UpdatePeriodStatus(ctx, period.PeriodID, domain.PeriodOpen, actor, reason, now); err != nil {
		logger.Error("Failed to reopen period", slog.String("error", err.Error()), slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to reopen period: %w", err)
	}

	logger.Warn("Period reopened",
		slog.String("period_id", period.PeriodID),
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.String("actor", actor),
		slog.String("reason", reason),
	)

	period.Status = domain.PeriodOpen
	period.LockedAt = nil
	period.LockedBy = ""
	period.LockReason = ""
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actor
	return period, nil
}

// transition loads or creates the period record and applies a forward
// transition per the domain state machine.
func (s *periodService) transition(ctx context.Context, entityID string, year int, month time.Month, next domain.PeriodStatus, actor string, reason string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entitySvc.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	period, err := s.periodRepo.FindPeriod(ctx, entityID, year, month)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to load period: %w", err)
		}
		// No record yet: implicitly OPEN. Materialize it so the transition
		// has a row to land on.
		period = &domain.AccountingPeriod{
			PeriodID: uuid.NewString(),
			EntityID: entityID,
			Year:     year,
			Month:    month,
			Status:   domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
		if err := s.periodRepo.SavePeriod(ctx, *period); err != nil {
			return nil, fmt.Errorf("failed to create period record: %w", err)
		}
	}

	if !period.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidPeriodTransition, period.Status, next)
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, period.PeriodID, next, actor, reason, now); err != nil {
		logger.Error("Failed to update period status", slog.String("error", err.Error()), slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to update period status: %w", err)
	}

	logger.Info("Period status changed",
		slog.String("period_id", period.PeriodID),
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.String("from", string(period.Status)),
		slog.String("to", string(next)),
	)

	period.Status = next
	if next == domain.PeriodLocked {
		period.LockedAt = &now
		period.LockedBy = actor
		period.LockReason = reason
	}
	period.LastUpdatedAt = now
	period.LastUpdatedBy = actor
	return period, nil
}

// GetPeriod returns the stored period record, or a synthesized OPEN record
// when none exists.
func (s *periodService) GetPeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.AccountingPeriod, error) {
	if _, err := s.entitySvc.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}

	period, err := s.periodRepo.FindPeriod(ctx, entityID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AccountingPeriod{
				EntityID: entityID,
				Year:     year,
				Month:    month,
				Status:   domain.PeriodOpen,
			}, nil
		}
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	return period, nil
}

// ListPeriods retrieves the stored period records for an entity.
func (s *periodService) ListPeriods(ctx context.Context, entityID string, limit int, offset int) ([]domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.entitySvc.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListPeriodsByEntity(ctx, entityID, limit, offset)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if periods == nil {
		periods = []domain.AccountingPeriod{}
	}
	return periods, nil
}
