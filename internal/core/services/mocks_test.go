package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

// --- Mock RecordRepository ---

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindRecordByID(ctx context.Context, kind domain.RecordKind, recordID string) (*domain.FundRecord, error) {
	args := m.Called(ctx, kind, recordID)
	var record *domain.FundRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.FundRecord)
	}
	return record, args.Error(1)
}

func (m *MockRecordRepository) FindRecordByFundNeed(ctx context.Context, kind domain.RecordKind, need domain.FundNeed, year, month int) (*domain.FundRecord, error) {
	args := m.Called(ctx, kind, need, year, month)
	var record *domain.FundRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.FundRecord)
	}
	return record, args.Error(1)
}

func (m *MockRecordRepository) ListRecords(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.FundRecord, int, error) {
	args := m.Called(ctx, filter)
	var records []domain.FundRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.FundRecord)
	}
	return records, args.Int(1), args.Error(2)
}

func (m *MockRecordRepository) SaveRecord(ctx context.Context, record domain.FundRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) UpdateRecord(ctx context.Context, record domain.FundRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) UpdateRecordSubmission(ctx context.Context, kind domain.RecordKind, recordID string, status domain.RecordStatus, submittedAt time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, kind, recordID, status, submittedAt, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockRecordRepository) FindRecordForUpdate(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (*domain.FundRecord, error) {
	args := m.Called(ctx, tx, kind, recordID)
	var record *domain.FundRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.FundRecord)
	}
	return record, args.Error(1)
}

func (m *MockRecordRepository) UpdateRecordStatusInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string, status domain.RecordStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, kind, recordID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock WithdrawalRepository (requests + transaction management) ---

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockWithdrawalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID)
	var request *domain.WithdrawalRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.WithdrawalRequest)
	}
	return request, args.Error(1)
}

func (m *MockWithdrawalRepository) ListRequests(ctx context.Context, filter portsrepo.WithdrawalRequestFilter) ([]domain.WithdrawalRequest, int, error) {
	args := m.Called(ctx, filter)
	var requests []domain.WithdrawalRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.WithdrawalRequest)
	}
	return requests, args.Int(1), args.Error(2)
}

func (m *MockWithdrawalRepository) CountRequestsByRecordInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (int, error) {
	args := m.Called(ctx, tx, kind, recordID)
	return args.Int(0), args.Error(1)
}

func (m *MockWithdrawalRepository) FindPendingRequestByRecordInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, tx, kind, recordID)
	var request *domain.WithdrawalRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.WithdrawalRequest)
	}
	return request, args.Error(1)
}

func (m *MockWithdrawalRepository) InsertRequestInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, tx, requestID)
	var request *domain.WithdrawalRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.WithdrawalRequest)
	}
	return request, args.Error(1)
}

func (m *MockWithdrawalRepository) FinalizeRequestInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.WithdrawalStatus, adminID *string, adminComment *string, reviewedAt time.Time, updatedBy string) (int64, error) {
	args := m.Called(ctx, tx, requestID, status, adminID, adminComment, reviewedAt, updatedBy)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock WithdrawalConfigRepository ---

type MockWithdrawalConfigRepository struct {
	mock.Mock
}

func (m *MockWithdrawalConfigRepository) FindConfigByModuleType(ctx context.Context, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error) {
	args := m.Called(ctx, moduleType)
	var config *domain.WithdrawalConfig
	if args.Get(0) != nil {
		config = args.Get(0).(*domain.WithdrawalConfig)
	}
	return config, args.Error(1)
}

func (m *MockWithdrawalConfigRepository) FindConfigByModuleTypeInTx(ctx context.Context, tx pgx.Tx, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error) {
	args := m.Called(ctx, tx, moduleType)
	var config *domain.WithdrawalConfig
	if args.Get(0) != nil {
		config = args.Get(0).(*domain.WithdrawalConfig)
	}
	return config, args.Error(1)
}

func (m *MockWithdrawalConfigRepository) UpsertConfig(ctx context.Context, config domain.WithdrawalConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockWithdrawalConfigRepository) ListConfigs(ctx context.Context) ([]domain.WithdrawalConfig, error) {
	args := m.Called(ctx)
	var configs []domain.WithdrawalConfig
	if args.Get(0) != nil {
		configs = args.Get(0).([]domain.WithdrawalConfig)
	}
	return configs, args.Error(1)
}

// --- Mock AuditEntryRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEntriesByRecord(ctx context.Context, kind domain.RecordKind, recordID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, kind, recordID)
	var entries []domain.AuditEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.AuditEntry)
	}
	return entries, args.Error(1)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	var notifications []domain.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]domain.Notification)
	}
	return notifications, args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, userID string, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsersByRoles(ctx context.Context, roles []domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, roles)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

// --- Mock UserSvcFacade ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	args := m.Called(ctx, req, creatorUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

// --- Recording NotificationDispatcher ---

// RecordingDispatcher captures dispatched notifications so tests can assert
// on fan-out behavior without a store.
type RecordingDispatcher struct {
	Sent []domain.Notification
}

func (d *RecordingDispatcher) Dispatch(ctx context.Context, notifications ...domain.Notification) {
	d.Sent = append(d.Sent, notifications...)
}
