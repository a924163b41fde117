package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kasaops/treasury/internal/apperrors"
	"github.com/kasaops/treasury/internal/core/domain"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/handlers"
	"github.com/kasaops/treasury/internal/platform/config"
)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) PayDocument(ctx context.Context, entityID string, req dto.PayDocumentRequest, actor string) (*dto.PaymentResultResponse, error) {
	args := m.Called(ctx, entityID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResultResponse), args.Error(1)
}

func (m *MockPaymentService) GetPaymentStatus(ctx context.Context, entityID string, documentID string, totalDue decimal.Decimal) (*dto.PaymentResultResponse, error) {
	args := m.Called(ctx, entityID, documentID, totalDue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResultResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Test Suite ---
type PaymentHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockPaymentService *MockPaymentService
	jwtSecret          string
	entityID           string
	actor              string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PaymentHandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "treasury-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.entityID = uuid.NewString()
	suite.actor = uuid.NewString()

	suite.mockPaymentService = new(MockPaymentService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, Environment: "test"}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Payment: suite.mockPaymentService,
	})
}

func (suite *PaymentHandlerTestSuite) postPayment(body dto.PayDocumentRequest, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	url := fmt.Sprintf("/api/v1/entities/%s/payments", suite.entityID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PaymentHandlerTestSuite) paymentRequest() dto.PayDocumentRequest {
	return dto.PayDocumentRequest{
		DocumentID:     "inv-2025-077",
		DocumentKind:   domain.DocInvoice,
		TotalDue:       decimal.RequireFromString("1000"),
		AccountID:      uuid.NewString(),
		Amount:         decimal.RequireFromString("400"),
		Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		IdempotencyKey: "key-1",
	}
}

// --- Test Cases ---

func (suite *PaymentHandlerTestSuite) TestPayDocument_Success() {
	body := suite.paymentRequest()
	expected := &dto.PaymentResultResponse{
		DocumentID: body.DocumentID,
		MovementID: uuid.NewString(),
		Status:     domain.StatusPartial,
		AmountPaid: decimal.RequireFromString("400"),
		Remaining:  decimal.RequireFromString("600"),
	}

	suite.mockPaymentService.On("PayDocument",
		mock.Anything,
		suite.entityID,
		mock.MatchedBy(func(r dto.PayDocumentRequest) bool {
			return r.DocumentID == body.DocumentID && r.IdempotencyKey == body.IdempotencyKey
		}),
		suite.actor,
	).Return(expected, nil).Once()

	w := suite.postPayment(body, suite.generateTestToken(suite.actor))

	suite.Equal(http.StatusOK, w.Code)

	var got dto.PaymentResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(expected.MovementID, got.MovementID)
	suite.Equal(domain.StatusPartial, got.Status)
	suite.True(got.Remaining.Equal(decimal.RequireFromString("600")))
	suite.False(got.Replayed)

	suite.mockPaymentService.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestPayDocument_MissingToken() {
	w := suite.postPayment(suite.paymentRequest(), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "PayDocument")
}

func (suite *PaymentHandlerTestSuite) TestPayDocument_ConflictingKey() {
	suite.mockPaymentService.On("PayDocument", mock.Anything, suite.entityID, mock.Anything, suite.actor).
		Return(nil, fmt.Errorf("%w: idempotency key already used for a different operation", apperrors.ErrConflict)).Once()

	w := suite.postPayment(suite.paymentRequest(), suite.generateTestToken(suite.actor))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestPayDocument_PeriodLocked() {
	suite.mockPaymentService.On("PayDocument", mock.Anything, suite.entityID, mock.Anything, suite.actor).
		Return(nil, fmt.Errorf("%w: period 2025-03 is locked", apperrors.ErrPeriodLocked)).Once()

	w := suite.postPayment(suite.paymentRequest(), suite.generateTestToken(suite.actor))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *PaymentHandlerTestSuite) TestPayDocument_InvalidBody() {
	url := fmt.Sprintf("/api/v1/entities/%s/payments", suite.entityID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(`{"documentID":""}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.actor))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPaymentService.AssertNotCalled(suite.T(), "PayDocument")
}

func (suite *PaymentHandlerTestSuite) TestGetPaymentStatus_Success() {
	documentID := "inv-2025-077"
	totalDue := decimal.RequireFromString("1000")
	expected := &dto.PaymentResultResponse{
		DocumentID: documentID,
		Status:     domain.StatusPaid,
		AmountPaid: totalDue,
		Remaining:  decimal.Zero,
	}

	suite.mockPaymentService.On("GetPaymentStatus",
		mock.Anything,
		suite.entityID,
		documentID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(totalDue) }),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/entities/%s/payments/documents/%s?totalDue=1000", suite.entityID, documentID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.actor))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var got dto.PaymentResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(domain.StatusPaid, got.Status)
	suite.True(got.Remaining.IsZero())

	suite.mockPaymentService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
