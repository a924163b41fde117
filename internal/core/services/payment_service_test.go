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

// MockLedgerWriterSvc is a mock type for the LedgerWriterSvc interface
type MockLedgerWriterSvc struct {
	mock.Mock
}

func (m *MockLedgerWriterSvc) PostMovement(ctx context.Context, params portssvc.PostMovementParams) (*domain.AccountMovement, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMovement), args.Error(1)
}

func (m *MockLedgerWriterSvc) PostTransfer(ctx context.Context, params portssvc.PostTransferParams) (*domain.AccountTransfer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTransfer), args.Error(1)
}

func (m *MockLedgerWriterSvc) PostReversal(ctx context.Context, entityID string, movementID string, date time.Time, actor string) (*domain.AccountMovement, error) {
	args := m.Called(ctx, entityID, movementID, date, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMovement), args.Error(1)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockMovementRepository
	mockLedgerSvc *MockLedgerWriterSvc
	service       portssvc.PaymentSvcFacade

	entityID   string
	documentID string
	accountID  string
	date       time.Time
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMovementRepository)
	suite.mockLedgerSvc = new(MockLedgerWriterSvc)
	suite.service = services.NewPaymentService(suite.mockRepo, suite.mockLedgerSvc)
	suite.entityID = uuid.NewString()
	suite.documentID = "inv-2025-077"
	suite.accountID = uuid.NewString()
	suite.date = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *PaymentServiceTestSuite) payRequest(amount, key string) dto.PayDocumentRequest {
	return dto.PayDocumentRequest{
		DocumentID:     suite.documentID,
		DocumentKind:   domain.DocInvoice,
		TotalDue:       decimal.RequireFromString("1000"),
		AccountID:      suite.accountID,
		Amount:         decimal.RequireFromString(amount),
		Date:           suite.date,
		IdempotencyKey: key,
	}
}

func (suite *PaymentServiceTestSuite) paymentMovement(amount string) domain.AccountMovement {
	return domain.AccountMovement{
		MovementID:   uuid.NewString(),
		AccountID:    suite.accountID,
		EntityID:     suite.entityID,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: "PLN",
		PostingDate:  suite.date,
		SourceKind:   domain.SourceDocumentPayment,
		SourceRef:    suite.documentID,
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestPayDocument_FirstInstallmentIsPartial() {
	ctx := context.Background()
	req := suite.payRequest("400", "key-1")
	posted := suite.paymentMovement("400")

	suite.mockRepo.On("FindMovementByIdempotencyKey", ctx, "key-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerSvc.On("PostMovement", ctx, mock.MatchedBy(func(p portssvc.PostMovementParams) bool {
		return p.SourceKind == domain.SourceDocumentPayment &&
			p.SourceRef == suite.documentID &&
			p.IdempotencyKey != nil && *p.IdempotencyKey == "key-1" &&
			p.Amount.Equal(decimal.RequireFromString("400"))
	})).Return(&posted, nil).Once()
	suite.mockRepo.On("FindMovementsByDocumentID", ctx, suite.documentID).
		Return([]domain.AccountMovement{posted}, nil).Once()

	result, err := suite.service.PayDocument(ctx, suite.entityID, req, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.StatusPartial, result.Status)
	suite.True(result.AmountPaid.Equal(decimal.RequireFromString("400")))
	suite.True(result.Remaining.Equal(decimal.RequireFromString("600")))
	suite.Equal(posted.MovementID, result.MovementID)
	suite.False(result.Replayed)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestPayDocument_SecondInstallmentSettles() {
	ctx := context.Background()
	req := suite.payRequest("600", "key-2")
	first := suite.paymentMovement("400")
	second := suite.paymentMovement("600")

	suite.mockRepo.On("FindMovementByIdempotencyKey", ctx, "key-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerSvc.On("PostMovement", ctx, mock.AnythingOfType("services.PostMovementParams")).Return(&second, nil).Once()
	suite.mockRepo.On("FindMovementsByDocumentID", ctx, suite.documentID).
		Return([]domain.AccountMovement{first, second}, nil).Once()

	result, err := suite.service.PayDocument(ctx, suite.entityID, req, "tester")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, result.Status)
	suite.True(result.AmountPaid.Equal(decimal.RequireFromString("1000")))
	suite.True(result.Remaining.IsZero())
}

func (suite *PaymentServiceTestSuite) TestPayDocument_ReplayDoesNotPostAgain() {
	ctx := context.Background()
	req := suite.payRequest("400", "key-1")
	prior := suite.paymentMovement("400")

	suite.mockRepo.On("FindMovementByIdempotencyKey", ctx, "key-1").Return(&prior, nil).Once()
	suite.mockRepo.On("FindMovementsByDocumentID", ctx, suite.documentID).
		Return([]domain.AccountMovement{prior}, nil).Once()

	result, err := suite.service.PayDocument(ctx, suite.entityID, req, "tester")

	suite.Require().NoError(err)
	suite.True(result.Replayed)
	suite.Equal(prior.MovementID, result.MovementID)
	// Amount paid is unchanged: the retry collapsed onto the original posting.
	suite.True(result.AmountPaid.Equal(decimal.RequireFromString("400")))
	suite.Equal(domain.StatusPartial, result.Status)

	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostMovement")
}

func (suite *PaymentServiceTestSuite) TestPayDocument_KeyReusedForDifferentDocument() {
	ctx := context.Background()
	req := suite.payRequest("400", "key-1")
	prior := suite.paymentMovement("400")
	prior.SourceRef = "inv-2025-999"

	suite.mockRepo.On("FindMovementByIdempotencyKey", ctx, "key-1").Return(&prior, nil).Once()

	result, err := suite.service.PayDocument(ctx, suite.entityID, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostMovement")
}

func (suite *PaymentServiceTestSuite) TestPayDocument_ConcurrentDuplicateBecomesReplay() {
	ctx := context.Background()
	req := suite.payRequest("400", "key-1")
	prior := suite.paymentMovement("400")

	// First lookup misses, the insert loses the unique-index race, the
	// second lookup finds the winner.
	suite.mockRepo.On("FindMovementByIdempotencyKey", ctx, "key-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerSvc.On("PostMovement", ctx, mock.AnythingOfType("services.PostMovementParams")).
		Return(nil, apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindMovementByIdempotencyKey", ctx, "key-1").Return(&prior, nil).Once()
	suite.mockRepo.On("FindMovementsByDocumentID", ctx, suite.documentID).
		Return([]domain.AccountMovement{prior}, nil).Once()

	result, err := suite.service.PayDocument(ctx, suite.entityID, req, "tester")

	suite.Require().NoError(err)
	suite.True(result.Replayed)
	suite.Equal(prior.MovementID, result.MovementID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestPayDocument_NonPositiveAmount() {
	ctx := context.Background()

	result, err := suite.service.PayDocument(ctx, suite.entityID, suite.payRequest("0", "key-1"), "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Nil(result)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindMovementByIdempotencyKey")
}

func (suite *PaymentServiceTestSuite) TestGetPaymentStatus_ReversalDropsAmountPaid() {
	ctx := context.Background()
	payment := suite.paymentMovement("400")
	reversal := domain.AccountMovement{
		MovementID:         uuid.NewString(),
		AccountID:          suite.accountID,
		EntityID:           suite.entityID,
		Amount:             decimal.RequireFromString("-400"),
		PostingDate:        suite.date.AddDate(0, 0, 1),
		SourceKind:         domain.SourceReversal,
		SourceRef:          payment.MovementID,
		ReversesMovementID: &payment.MovementID,
	}

	suite.mockRepo.On("FindMovementsByDocumentID", ctx, suite.documentID).
		Return([]domain.AccountMovement{payment, reversal}, nil).Once()

	result, err := suite.service.GetPaymentStatus(ctx, suite.entityID, suite.documentID, decimal.RequireFromString("1000"))

	suite.Require().NoError(err)
	suite.Equal(domain.StatusUnpaid, result.Status)
	suite.True(result.AmountPaid.IsZero())
	suite.True(result.Remaining.Equal(decimal.RequireFromString("1000")))
}

func (suite *PaymentServiceTestSuite) TestGetPaymentStatus_IgnoresOtherEntityMovements() {
	// Two entities can reference the same caller-supplied document ID; one
	// entity's query must not fold the other's payments.
	ctx := context.Background()
	otherEntityPayment := suite.paymentMovement("400")
	otherEntityPayment.EntityID = uuid.NewString()

	suite.mockRepo.On("FindMovementsByDocumentID", ctx, suite.documentID).
		Return([]domain.AccountMovement{otherEntityPayment}, nil).Once()

	result, err := suite.service.GetPaymentStatus(ctx, suite.entityID, suite.documentID, decimal.RequireFromString("1000"))

	suite.Require().NoError(err)
	suite.Equal(domain.StatusUnpaid, result.Status)
	suite.True(result.AmountPaid.IsZero())
	suite.True(result.Remaining.Equal(decimal.RequireFromString("1000")))
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
