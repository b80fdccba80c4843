package pgsql

import (
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository against one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RecordRepo:       NewRecordRepository(dbPool),
		ConfigRepo:       NewWithdrawalConfigRepository(dbPool),
		WithdrawalRepo:   NewWithdrawalRepository(dbPool),
		AuditRepo:        NewAuditRepository(dbPool),
		NotificationRepo: NewNotificationRepository(dbPool),
		UserRepo:         NewUserRepository(dbPool),
	}
}
