package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/handlers"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

// --- Mock WithdrawalEngineSvc ---

type MockWithdrawalEngine struct {
	mock.Mock
}

func (m *MockWithdrawalEngine) RequestWithdrawal(ctx context.Context, kind domain.RecordKind, recordID string, requesterID string, reason string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, kind, recordID, requesterID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalEngine) ReviewWithdrawal(ctx context.Context, requestID string, adminID string, decision domain.ReviewDecision, comment *string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID, adminID, decision, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalEngine) ListRequests(ctx context.Context, params dto.ListWithdrawalRequestsParams) (*dto.ListWithdrawalRequestsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListWithdrawalRequestsResponse), args.Error(1)
}

var _ portssvc.WithdrawalEngineSvc = (*MockWithdrawalEngine)(nil)

// --- Mock WithdrawalConfigSvc ---

type MockWithdrawalConfigService struct {
	mock.Mock
}

func (m *MockWithdrawalConfigService) GetConfig(ctx context.Context, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error) {
	args := m.Called(ctx, moduleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalConfig), args.Error(1)
}

func (m *MockWithdrawalConfigService) UpsertConfig(ctx context.Context, moduleType domain.RecordKind, req dto.UpsertWithdrawalConfigRequest, updaterUserID string) (*domain.WithdrawalConfig, error) {
	args := m.Called(ctx, moduleType, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalConfig), args.Error(1)
}

func (m *MockWithdrawalConfigService) ListConfigs(ctx context.Context) ([]domain.WithdrawalConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WithdrawalConfig), args.Error(1)
}

var _ portssvc.WithdrawalConfigSvc = (*MockWithdrawalConfigService)(nil)

// --- Mock UserSvcFacade ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---

type WithdrawalHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockEngine        *MockWithdrawalEngine
	mockConfigService *MockWithdrawalConfigService
	mockUserService   *MockUserService
	jwtSecret         string
}

func (suite *WithdrawalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "frp-test",
		Subject:   userID,
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

func (suite *WithdrawalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEngine = new(MockWithdrawalEngine)
	suite.mockConfigService = new(MockWithdrawalConfigService)
	suite.mockUserService = new(MockUserService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterWithdrawalRoutes(v1, suite.mockEngine, suite.mockConfigService, suite.mockUserService)
}

func (suite *WithdrawalHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *WithdrawalHandlerTestSuite) TestRequestWithdrawal_Success() {
	userID := "user-1"
	expected := &domain.WithdrawalRequest{
		RequestID:   "req-1",
		RecordKind:  domain.KindPredict,
		RecordID:    "rec-1",
		RequesterID: userID,
		Reason:      "entered the wrong amount",
		Status:      domain.WithdrawalPending,
	}
	suite.mockEngine.On("RequestWithdrawal",
		mock.Anything, domain.KindPredict, "rec-1", userID, "entered the wrong amount").
		Return(expected, nil).Once()

	body := dto.RequestWithdrawalRequest{RecordID: "rec-1", RecordType: "predict", Reason: "entered the wrong amount"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals", suite.generateTestToken(userID), body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.WithdrawalRequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("req-1", resp.RequestID)
	suite.Equal("predict", resp.RecordType)
	suite.Equal("PENDING", resp.Status)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestRequestWithdrawal_RequiresAuth() {
	body := dto.RequestWithdrawalRequest{RecordID: "rec-1", RecordType: "predict", Reason: "typo"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals", "", body)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEngine.AssertNotCalled(suite.T(), "RequestWithdrawal")
}

func (suite *WithdrawalHandlerTestSuite) TestRequestWithdrawal_RefusalBodyCarriesTypeAndDetails() {
	suite.mockEngine.On("RequestWithdrawal",
		mock.Anything, domain.KindPredict, "rec-1", "user-1", "too late now").
		Return(nil, apperrors.NewWorkflowError(apperrors.TypeTimeLimitExceeded,
			"withdrawal time limit has passed",
			map[string]any{"hoursSinceSubmission": 80.5, "timeLimitHours": 72})).Once()

	body := dto.RequestWithdrawalRequest{RecordID: "rec-1", RecordType: "predict", Reason: "too late now"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals", suite.generateTestToken("user-1"), body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp handlers.WorkflowErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TimeLimitExceeded", resp.Type)
	suite.Equal("withdrawal time limit has passed", resp.Message)
	suite.Equal(float64(72), resp.Details["timeLimitHours"])
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestRequestWithdrawal_RecordNotFoundIs404() {
	suite.mockEngine.On("RequestWithdrawal",
		mock.Anything, domain.KindPredict, "missing", "user-1", "typo").
		Return(nil, apperrors.NewWorkflowError(apperrors.TypeRecordNotFound, "record not found", nil)).Once()

	body := dto.RequestWithdrawalRequest{RecordID: "missing", RecordType: "predict", Reason: "typo"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals", suite.generateTestToken("user-1"), body)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestRequestWithdrawal_AlreadyPendingIs409() {
	suite.mockEngine.On("RequestWithdrawal",
		mock.Anything, domain.KindPredict, "rec-1", "user-1", "typo").
		Return(nil, apperrors.NewWorkflowError(apperrors.TypeAlreadyPending,
			"a withdrawal request for this record is already pending", nil)).Once()

	body := dto.RequestWithdrawalRequest{RecordID: "rec-1", RecordType: "predict", Reason: "typo"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals", suite.generateTestToken("user-1"), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestReviewWithdrawal_Success() {
	adminID := "admin-1"
	comment := "looks fine"
	reviewedAt := time.Now().UTC()
	expected := &domain.WithdrawalRequest{
		RequestID:    "req-1",
		RecordKind:   domain.KindPredict,
		RecordID:     "rec-1",
		RequesterID:  "user-1",
		Status:       domain.WithdrawalApproved,
		AdminID:      &adminID,
		AdminComment: &comment,
		ReviewedAt:   &reviewedAt,
	}
	suite.mockEngine.On("ReviewWithdrawal",
		mock.Anything, "req-1", adminID, domain.DecisionApproved, &comment).
		Return(expected, nil).Once()

	body := dto.ReviewWithdrawalRequest{Decision: "approved", Comment: &comment}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals/req-1/review", suite.generateTestToken(adminID), body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WithdrawalRequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("APPROVED", resp.Status)
	suite.Require().NotNil(resp.AdminID)
	suite.Equal(adminID, *resp.AdminID)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestReviewWithdrawal_ForbiddenIs403() {
	suite.mockEngine.On("ReviewWithdrawal",
		mock.Anything, "req-1", "user-1", domain.DecisionRejected, (*string)(nil)).
		Return(nil, apperrors.NewWorkflowError(apperrors.TypeForbidden,
			"reviewer does not hold the admin capability", nil)).Once()

	body := dto.ReviewWithdrawalRequest{Decision: "rejected"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals/req-1/review", suite.generateTestToken("user-1"), body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestReviewWithdrawal_AlreadyProcessedIs409() {
	suite.mockEngine.On("ReviewWithdrawal",
		mock.Anything, "req-1", "admin-1", domain.DecisionApproved, (*string)(nil)).
		Return(nil, apperrors.NewWorkflowError(apperrors.TypeAlreadyProcessed,
			"withdrawal request has already been reviewed", nil)).Once()

	body := dto.ReviewWithdrawalRequest{Decision: "approved"}
	w := suite.doJSON(http.MethodPost, "/api/v1/withdrawals/req-1/review", suite.generateTestToken("admin-1"), body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestListRequests_PassesFilters() {
	expected := &dto.ListWithdrawalRequestsResponse{
		Requests: []dto.WithdrawalRequestResponse{{RequestID: "req-1", Status: "PENDING"}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}
	suite.mockEngine.On("ListRequests", mock.Anything, mock.MatchedBy(func(p dto.ListWithdrawalRequestsParams) bool {
		return p.Status != nil && *p.Status == "PENDING" && p.Page == 1 && p.PageSize == 20
	})).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/withdrawals?status=PENDING", suite.generateTestToken("admin-1"), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListWithdrawalRequestsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Total)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestUpsertConfig_ForbiddenForReporter() {
	suite.mockUserService.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", Role: domain.RoleReporter}, nil).Once()

	requiresApproval := true
	body := dto.UpsertWithdrawalConfigRequest{
		AllowedStatuses:  []string{"SUBMITTED"},
		TimeLimitHours:   72,
		MaxAttempts:      3,
		RequiresApproval: &requiresApproval,
	}
	w := suite.doJSON(http.MethodPut, "/api/v1/withdrawal-configs/predict", suite.generateTestToken("user-1"), body)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockConfigService.AssertNotCalled(suite.T(), "UpsertConfig")
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestUpsertConfig_AdminSuccess() {
	stored := &domain.WithdrawalConfig{
		ModuleType:       domain.KindPredict,
		AllowedStatuses:  []domain.RecordStatus{domain.StatusSubmitted},
		TimeLimitHours:   72,
		MaxAttempts:      3,
		RequiresApproval: true,
	}
	suite.mockUserService.On("GetUserByID", mock.Anything, "admin-1").
		Return(&domain.User{UserID: "admin-1", Role: domain.RoleAdmin}, nil).Once()
	suite.mockConfigService.On("UpsertConfig",
		mock.Anything, domain.KindPredict, mock.AnythingOfType("dto.UpsertWithdrawalConfigRequest"), "admin-1").
		Return(stored, nil).Once()

	requiresApproval := true
	body := dto.UpsertWithdrawalConfigRequest{
		AllowedStatuses:  []string{"SUBMITTED"},
		TimeLimitHours:   72,
		MaxAttempts:      3,
		RequiresApproval: &requiresApproval,
	}
	w := suite.doJSON(http.MethodPut, "/api/v1/withdrawal-configs/predict", suite.generateTestToken("admin-1"), body)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.WithdrawalConfigResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("predict", resp.ModuleType)
	suite.True(resp.RequiresApproval)
	suite.mockConfigService.AssertExpectations(suite.T())
}

func (suite *WithdrawalHandlerTestSuite) TestGetConfig_UnknownModuleTypeIs400() {
	w := suite.doJSON(http.MethodGet, "/api/v1/withdrawal-configs/bogus", suite.generateTestToken("user-1"), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConfigService.AssertNotCalled(suite.T(), "GetConfig")
}

func TestWithdrawalHandler(t *testing.T) {
	suite.Run(t, new(WithdrawalHandlerTestSuite))
}
