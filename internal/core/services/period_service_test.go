package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/core/services"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
)

// MockPeriodRepository is a mock type for the PeriodRepositoryFacade interface
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriod(ctx context.Context, entityID string, year int, month time.Month) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, entityID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByEntity(ctx context.Context, entityID string, limit int, offset int) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, entityID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, actor string, reason string, now time.Time) error {
	args := m.Called(ctx, periodID, status, actor, reason, now)
	return args.Error(0)
}

// MockEntityReaderSvc is a mock type for the EntityReaderSvc interface
type MockEntityReaderSvc struct {
	mock.Mock
}

func (m *MockEntityReaderSvc) GetEntityByID(ctx context.Context, entityID string) (*domain.BusinessEntity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessEntity), args.Error(1)
}

func (m *MockEntityReaderSvc) ListEntities(ctx context.Context, limit int, offset int) ([]domain.BusinessEntity, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessEntity), args.Error(1)
}

// --- Test Suite Setup ---

type PeriodServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockPeriodRepository
	mockEntitySvc *MockEntityReaderSvc
	service       portssvc.PeriodSvcFacade

	entityID string
	entity   *domain.BusinessEntity
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPeriodRepository)
	suite.mockEntitySvc = new(MockEntityReaderSvc)
	suite.service = services.NewPeriodService(suite.mockRepo, suite.mockEntitySvc, false, 0)
	suite.entityID = uuid.NewString()
	suite.entity = &domain.BusinessEntity{EntityID: suite.entityID, Name: "Test Sp. z o.o."}
}

func (suite *PeriodServiceTestSuite) storedPeriod(status domain.PeriodStatus) *domain.AccountingPeriod {
	return &domain.AccountingPeriod{
		PeriodID: uuid.NewString(),
		EntityID: suite.entityID,
		Year:     2025,
		Month:    time.March,
		Status:   status,
	}
}

// --- AssertPostable ---

func (suite *PeriodServiceTestSuite) TestAssertPostable_NoRecordIsOpen() {
	ctx := context.Background()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AssertPostable(ctx, suite.entityID, date)

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestAssertPostable_ClosingStillAcceptsPostings() {
	ctx := context.Background()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).
		Return(suite.storedPeriod(domain.PeriodClosing), nil).Once()

	suite.NoError(suite.service.AssertPostable(ctx, suite.entityID, date))
}

func (suite *PeriodServiceTestSuite) TestAssertPostable_Locked() {
	ctx := context.Background()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).
		Return(suite.storedPeriod(domain.PeriodLocked), nil).Once()

	err := suite.service.AssertPostable(ctx, suite.entityID, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
}

func (suite *PeriodServiceTestSuite) TestAssertPostable_AutoLockExpired() {
	ctx := context.Background()
	service := services.NewPeriodService(suite.mockRepo, suite.mockEntitySvc, false, 10)

	// A date far enough in the past that day 10 of the following month has
	// long passed.
	date := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2020, time.January).Return(nil, apperrors.ErrNotFound).Once()

	err := service.AssertPostable(ctx, suite.entityID, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodLocked)
}

func (suite *PeriodServiceTestSuite) TestAssertPostable_CurrentMonthNotAutoLocked() {
	ctx := context.Background()
	service := services.NewPeriodService(suite.mockRepo, suite.mockEntitySvc, false, 10)

	now := time.Now().UTC()
	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, now.Year(), now.Month()).Return(nil, apperrors.ErrNotFound).Once()

	suite.NoError(service.AssertPostable(ctx, suite.entityID, now))
}

// --- Transitions ---

func (suite *PeriodServiceTestSuite) TestClosePeriod_MaterializesMissingRecord() {
	ctx := context.Background()

	suite.mockEntitySvc.On("GetEntityByID", ctx, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePeriod", ctx, mock.MatchedBy(func(p domain.AccountingPeriod) bool {
		return p.EntityID == suite.entityID && p.Year == 2025 && p.Month == time.March && p.Status == domain.PeriodOpen
	})).Return(nil).Once()
	suite.mockRepo.On("UpdatePeriodStatus", ctx, mock.AnythingOfType("string"), domain.PeriodClosing, "tester", "", mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := suite.service.ClosePeriod(ctx, suite.entityID, 2025, time.March, "tester")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodClosing, period.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestLockPeriod_FromClosing() {
	ctx := context.Background()
	stored := suite.storedPeriod(domain.PeriodClosing)

	suite.mockEntitySvc.On("GetEntityByID", ctx, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).Return(stored, nil).Once()
	suite.mockRepo.On("UpdatePeriodStatus", ctx, stored.PeriodID, domain.PeriodLocked, "tester", "month-end close", mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := suite.service.LockPeriod(ctx, suite.entityID, 2025, time.March, "tester", "month-end close")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodLocked, period.Status)
	suite.Require().NotNil(period.LockedAt)
	suite.Equal("tester", period.LockedBy)
	suite.Equal("month-end close", period.LockReason)
}

func (suite *PeriodServiceTestSuite) TestClosePeriod_LockedPeriodRejected() {
	ctx := context.Background()

	suite.mockEntitySvc.On("GetEntityByID", ctx, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).
		Return(suite.storedPeriod(domain.PeriodLocked), nil).Once()

	_, err := suite.service.ClosePeriod(ctx, suite.entityID, 2025, time.March, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidPeriodTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus")
}

// --- Reopen ---

func (suite *PeriodServiceTestSuite) TestReopenPeriod_DisabledByDefault() {
	ctx := context.Background()

	_, err := suite.service.ReopenPeriod(ctx, suite.entityID, 2025, time.March, "tester", "late invoice")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus")
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_EnabledUnlocks() {
	ctx := context.Background()
	service := services.NewPeriodService(suite.mockRepo, suite.mockEntitySvc, true, 0)
	stored := suite.storedPeriod(domain.PeriodLocked)

	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).Return(stored, nil).Once()
	suite.mockRepo.On("UpdatePeriodStatus", ctx, stored.PeriodID, domain.PeriodOpen, "tester", "late invoice", mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := service.ReopenPeriod(ctx, suite.entityID, 2025, time.March, "tester", "late invoice")

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Nil(period.LockedAt)
	suite.Empty(period.LockedBy)
}

func (suite *PeriodServiceTestSuite) TestReopenPeriod_NotLocked() {
	ctx := context.Background()
	service := services.NewPeriodService(suite.mockRepo, suite.mockEntitySvc, true, 0)

	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.March).
		Return(suite.storedPeriod(domain.PeriodOpen), nil).Once()

	_, err := service.ReopenPeriod(ctx, suite.entityID, 2025, time.March, "tester", "oops")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidPeriodTransition)
}

// --- Reads ---

func (suite *PeriodServiceTestSuite) TestGetPeriod_SynthesizesOpen() {
	ctx := context.Background()

	suite.mockEntitySvc.On("GetEntityByID", ctx, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockRepo.On("FindPeriod", ctx, suite.entityID, 2025, time.April).Return(nil, apperrors.ErrNotFound).Once()

	period, err := suite.service.GetPeriod(ctx, suite.entityID, 2025, time.April)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.Status)
	suite.Empty(period.PeriodID) // never persisted by a read
}

func (suite *PeriodServiceTestSuite) TestListPeriods_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockEntitySvc.On("GetEntityByID", ctx, suite.entityID).Return(suite.entity, nil).Once()
	suite.mockRepo.On("ListPeriodsByEntity", ctx, suite.entityID, 10, 0).Return(nil, nil).Once()

	periods, err := suite.service.ListPeriods(ctx, suite.entityID, 10, 0)

	suite.Require().NoError(err)
	suite.NotNil(periods)
	suite.Empty(periods)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
