package repositories

// RepositoryProvider holds instances of all the application repositories.
type RepositoryProvider struct {
	RecordRepo       RecordRepositoryWithTx
	ConfigRepo       WithdrawalConfigRepository
	WithdrawalRepo   WithdrawalRepositoryWithTx
	AuditRepo        AuditEntryRepository
	NotificationRepo NotificationRepository
	UserRepo         UserRepository
}
