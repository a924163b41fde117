package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	"github.com/kasaops/treasury/internal/core/services"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
)

type AdjustmentServiceTestSuite struct {
	suite.Suite
	mockLedgerSvc *MockLedgerWriterSvc
	service       portssvc.AdjustmentSvcFacade

	entityID string
	date     time.Time
}

func (suite *AdjustmentServiceTestSuite) SetupTest() {
	suite.mockLedgerSvc = new(MockLedgerWriterSvc)
	suite.service = services.NewAdjustmentService(suite.mockLedgerSvc)
	suite.entityID = uuid.NewString()
	suite.date = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *AdjustmentServiceTestSuite) TestAdjustBalance_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.AdjustBalanceRequest{
		AccountID: accountID,
		Amount:    decimal.RequireFromString("-12.30"),
		Date:      suite.date,
		Reason:    "bank fee not captured by import",
	}
	posted := &domain.AccountMovement{MovementID: uuid.NewString(), AccountID: accountID}

	suite.mockLedgerSvc.On("PostMovement", ctx, mock.MatchedBy(func(p portssvc.PostMovementParams) bool {
		return p.SourceKind == domain.SourceAdjustment &&
			p.SourceRef == accountID &&
			p.Reason == req.Reason &&
			p.Amount.Equal(req.Amount)
	})).Return(posted, nil).Once()

	movement, err := suite.service.AdjustBalance(ctx, suite.entityID, req, "tester")

	suite.Require().NoError(err)
	suite.Equal(posted.MovementID, movement.MovementID)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *AdjustmentServiceTestSuite) TestAdjustBalance_MissingReason() {
	ctx := context.Background()
	req := dto.AdjustBalanceRequest{
		AccountID: uuid.NewString(),
		Amount:    decimal.RequireFromString("5"),
		Date:      suite.date,
		Reason:    "   ",
	}

	_, err := suite.service.AdjustBalance(ctx, suite.entityID, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostMovement")
}

func (suite *AdjustmentServiceTestSuite) TestReverseMovement_Delegates() {
	ctx := context.Background()
	movementID := uuid.NewString()
	reversal := &domain.AccountMovement{MovementID: uuid.NewString(), SourceKind: domain.SourceReversal}

	suite.mockLedgerSvc.On("PostReversal", ctx, suite.entityID, movementID, suite.date, "tester").Return(reversal, nil).Once()

	got, err := suite.service.ReverseMovement(ctx, suite.entityID, movementID, dto.ReverseMovementRequest{Date: suite.date}, "tester")

	suite.Require().NoError(err)
	suite.Equal(reversal.MovementID, got.MovementID)
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func TestAdjustmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdjustmentServiceTestSuite))
}
