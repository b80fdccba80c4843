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
	"github.com/fingov/fund_reporting_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TestRegisterUserAlwaysGetsReporterRole() {
	req := dto.RegisterRequest{Username: "ada", Password: "s3cr3tpass", Name: "Ada Reporter"}
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ada").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleReporter && u.Username == "ada" &&
			u.CreatedBy == u.UserID && utils.CheckPasswordHash("s3cr3tpass", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleReporter, user.Role)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUserRejectsTakenUsername() {
	req := dto.RegisterRequest{Username: "ada", Password: "s3cr3tpass", Name: "Ada Reporter"}
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ada").
		Return(&domain.User{UserID: "user-1", Username: "ada"}, nil).Once()

	_, err := suite.service.RegisterUser(suite.ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUserAllowsAdminToMintAuditor() {
	req := dto.CreateUserRequest{Username: "grace", Password: "s3cr3tpass", Name: "Grace Auditor", Role: "AUDITOR"}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").
		Return(&domain.User{UserID: "admin-1", Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "grace").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAuditor && u.CreatedBy == "admin-1"
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAuditor, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUserForbiddenForNonAdmin() {
	req := dto.CreateUserRequest{Username: "grace", Password: "s3cr3tpass", Name: "Grace", Role: "REPORTER"}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "auditor-1").
		Return(&domain.User{UserID: "auditor-1", Role: domain.RoleAuditor}, nil).Once()

	_, err := suite.service.CreateUser(suite.ctx, req, "auditor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUserFailsWhenCreatorLookupFails() {
	req := dto.CreateUserRequest{Username: "grace", Password: "s3cr3tpass", Name: "Grace", Role: "REPORTER"}
	suite.mockUserRepo.On("FindUserByID", suite.ctx, "admin-1").
		Return(nil, assert.AnError).Once()

	_, err := suite.service.CreateUser(suite.ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListAdminsQueriesAdminCapableRoles() {
	admins := []domain.User{
		{UserID: "admin-1", Role: domain.RoleAdmin},
		{UserID: "auditor-1", Role: domain.RoleAuditor},
	}
	suite.mockUserRepo.On("ListUsersByRoles", suite.ctx,
		[]domain.UserRole{domain.RoleAdmin, domain.RoleAuditor}).
		Return(admins, nil).Once()

	listed, err := suite.service.ListAdmins(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(admins, listed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
