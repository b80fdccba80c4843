package repositories

import (
	"context"
	"time"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WithdrawalRequestFilter narrows request listings for the approval console.
type WithdrawalRequestFilter struct {
	Status     *domain.WithdrawalStatus
	ModuleType *domain.RecordKind
	Limit      int
	Offset     int
}

// WithdrawalConfigRepository defines storage for per-module withdrawal policies.
type WithdrawalConfigRepository interface {
	// FindConfigByModuleType retrieves the policy for a module type.
	FindConfigByModuleType(ctx context.Context, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error)

	// FindConfigByModuleTypeInTx is the same lookup inside a caller-owned transaction.
	FindConfigByModuleTypeInTx(ctx context.Context, tx pgx.Tx, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error)

	// UpsertConfig inserts or overwrites the policy for its module type.
	UpsertConfig(ctx context.Context, config domain.WithdrawalConfig) error

	// ListConfigs retrieves all stored policies.
	ListConfigs(ctx context.Context) ([]domain.WithdrawalConfig, error)
}

// WithdrawalRequestReader defines read operations for withdrawal requests.
type WithdrawalRequestReader interface {
	// FindRequestByID retrieves a request by id.
	FindRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)

	// ListRequests retrieves a filtered, paginated request listing and the total match count.
	ListRequests(ctx context.Context, filter WithdrawalRequestFilter) ([]domain.WithdrawalRequest, int, error)
}

// WithdrawalRequestTxOps defines request operations that run inside a
// caller-owned transaction, so the engine's checks and writes are atomic.
type WithdrawalRequestTxOps interface {
	// CountRequestsByRecordInTx counts all requests ever made against one record.
	CountRequestsByRecordInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (int, error)

	// FindPendingRequestByRecordInTx returns the pending request for a record, or ErrNotFound.
	FindPendingRequestByRecordInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (*domain.WithdrawalRequest, error)

	// InsertRequestInTx inserts a new withdrawal request row.
	InsertRequestInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error

	// FindRequestByIDForUpdate loads a request inside tx with a row-level lock.
	FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.WithdrawalRequest, error)

	// FinalizeRequestInTx conditionally moves a request out of PENDING. It returns
	// the number of rows affected; zero means the request was already processed.
	FinalizeRequestInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.WithdrawalStatus, adminID *string, adminComment *string, reviewedAt time.Time, updatedBy string) (int64, error)
}

// WithdrawalRepositoryFacade combines all withdrawal-request repository interfaces.
type WithdrawalRepositoryFacade interface {
	WithdrawalRequestReader
	WithdrawalRequestTxOps
}

// WithdrawalRepositoryWithTx extends WithdrawalRepositoryFacade with transaction management.
type WithdrawalRepositoryWithTx interface {
	WithdrawalRepositoryFacade
	TransactionManager
}
