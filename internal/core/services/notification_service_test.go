package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/core/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

type NotificationServiceTestSuite struct {
	suite.Suite
	mockNotificationRepo *MockNotificationRepository
	service              portssvc.NotificationSvcFacade
	ctx                  context.Context
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockNotificationRepo = new(MockNotificationRepository)
	suite.service = services.NewNotificationService(suite.mockNotificationRepo)
	suite.ctx = context.Background()
}

func (suite *NotificationServiceTestSuite) TestDispatchSavesEachNotification() {
	first := domain.Notification{NotificationID: "n-1", UserID: "admin-1", Type: domain.NotifyWithdrawalRequested}
	second := domain.Notification{NotificationID: "n-2", UserID: "auditor-1", Type: domain.NotifyWithdrawalRequested}
	suite.mockNotificationRepo.On("SaveNotification", suite.ctx, first).Return(nil).Once()
	suite.mockNotificationRepo.On("SaveNotification", suite.ctx, second).Return(nil).Once()

	suite.service.Dispatch(suite.ctx, first, second)

	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestDispatchSwallowsSaveFailures() {
	failing := domain.Notification{NotificationID: "n-1", UserID: "admin-1"}
	delivered := domain.Notification{NotificationID: "n-2", UserID: "auditor-1"}
	suite.mockNotificationRepo.On("SaveNotification", suite.ctx, failing).Return(assert.AnError).Once()
	suite.mockNotificationRepo.On("SaveNotification", suite.ctx, delivered).Return(nil).Once()

	// A failed insert must not panic or stop delivery of the rest.
	suite.service.Dispatch(suite.ctx, failing, delivered)

	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestListNotificationsPaginates() {
	params := dto.ListNotificationsParams{UnreadOnly: true, Page: 2, PageSize: 10}
	notifications := []domain.Notification{
		{NotificationID: "n-1", UserID: "user-1", Title: "Withdrawal request approved"},
	}
	suite.mockNotificationRepo.On("ListNotificationsByUser", suite.ctx, "user-1", true, 10, 10).
		Return(notifications, 11, nil).Once()

	resp, err := suite.service.ListNotifications(suite.ctx, "user-1", params)

	suite.Require().NoError(err)
	suite.Equal(11, resp.Total)
	suite.Equal(2, resp.Page)
	suite.Require().Len(resp.Notifications, 1)
	suite.Equal("n-1", resp.Notifications[0].NotificationID)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestMarkReadScopedToOwner() {
	suite.mockNotificationRepo.On("MarkNotificationRead", suite.ctx, "user-1", "n-1").
		Return(nil).Once()

	err := suite.service.MarkRead(suite.ctx, "user-1", "n-1")

	suite.Require().NoError(err)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
