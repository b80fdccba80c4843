package services

import (
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.Record = NewRecordService(repos.RecordRepo, repos.AuditRepo)
	container.WithdrawalConfig = NewWithdrawalConfigService(repos.ConfigRepo)

	// The engine owns the transaction boundary: it needs the tx-scoped
	// surfaces of the record/withdrawal repositories plus the side-effect
	// collaborators.
	container.WithdrawalEngine = NewWithdrawalService(
		repos.WithdrawalRepo,
		repos.ConfigRepo,
		repos.RecordRepo,
		repos.AuditRepo,
		container.User,
		container.Notification,
	)

	container.TokenService = NewTokenService(cfg)
	container.GoogleAuth = NewGoogleAuthService(cfg, repos.UserRepo)

	return container
}
