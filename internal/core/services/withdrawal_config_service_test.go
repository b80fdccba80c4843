package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/core/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

type WithdrawalConfigServiceTestSuite struct {
	suite.Suite
	mockConfigRepo *MockWithdrawalConfigRepository
	service        portssvc.WithdrawalConfigSvc
	ctx            context.Context
}

func (suite *WithdrawalConfigServiceTestSuite) SetupTest() {
	suite.mockConfigRepo = new(MockWithdrawalConfigRepository)
	suite.service = services.NewWithdrawalConfigService(suite.mockConfigRepo)
	suite.ctx = context.Background()
}

func upsertConfigRequest() dto.UpsertWithdrawalConfigRequest {
	requiresApproval := true
	return dto.UpsertWithdrawalConfigRequest{
		AllowedStatuses:  []string{"SUBMITTED", "APPROVED", "SUBMITTED"},
		TimeLimitHours:   72,
		MaxAttempts:      3,
		RequiresApproval: &requiresApproval,
	}
}

func (suite *WithdrawalConfigServiceTestSuite) TestUpsertConfigDedupsStatusesAndReadsBack() {
	stored := predictPolicy(true)
	suite.mockConfigRepo.On("UpsertConfig", suite.ctx, mock.MatchedBy(func(c domain.WithdrawalConfig) bool {
		return c.ModuleType == domain.KindPredict &&
			len(c.AllowedStatuses) == 2 &&
			c.AllowedStatuses[0] == domain.StatusSubmitted &&
			c.AllowedStatuses[1] == domain.StatusApproved &&
			c.RequiresApproval
	})).Return(nil).Once()
	suite.mockConfigRepo.On("FindConfigByModuleType", suite.ctx, domain.KindPredict).
		Return(stored, nil).Once()

	config, err := suite.service.UpsertConfig(suite.ctx, domain.KindPredict, upsertConfigRequest(), "admin-1")

	suite.Require().NoError(err)
	suite.Equal(stored, config)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalConfigServiceTestSuite) TestUpsertConfigRejectsUnknownStatus() {
	req := upsertConfigRequest()
	req.AllowedStatuses = []string{"SUBMITTED", "LIMBO"}

	_, err := suite.service.UpsertConfig(suite.ctx, domain.KindPredict, req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalConfigServiceTestSuite) TestUpsertConfigPropagatesRepositoryError() {
	suite.mockConfigRepo.On("UpsertConfig", suite.ctx, mock.AnythingOfType("domain.WithdrawalConfig")).
		Return(assert.AnError).Once()

	_, err := suite.service.UpsertConfig(suite.ctx, domain.KindPredict, upsertConfigRequest(), "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalConfigServiceTestSuite) TestGetConfigPassesThrough() {
	stored := predictPolicy(false)
	suite.mockConfigRepo.On("FindConfigByModuleType", suite.ctx, domain.KindPredict).
		Return(stored, nil).Once()

	config, err := suite.service.GetConfig(suite.ctx, domain.KindPredict)

	suite.Require().NoError(err)
	suite.Equal(stored, config)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func (suite *WithdrawalConfigServiceTestSuite) TestListConfigs() {
	configs := []domain.WithdrawalConfig{*predictPolicy(true)}
	suite.mockConfigRepo.On("ListConfigs", suite.ctx).Return(configs, nil).Once()

	listed, err := suite.service.ListConfigs(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(configs, listed)
	suite.mockConfigRepo.AssertExpectations(suite.T())
}

func TestWithdrawalConfigServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalConfigServiceTestSuite))
}
