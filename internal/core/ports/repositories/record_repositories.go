package repositories

import (
	"context"
	"time"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RecordFilter narrows record listings for the report screens.
type RecordFilter struct {
	Kind   domain.RecordKind
	Status *domain.RecordStatus
	Year   *int
	Month  *int
	Limit  int
	Offset int
}

// RecordReader defines read operations for fund record data
type RecordReader interface {
	// FindRecordByID retrieves a record by its kind and id.
	FindRecordByID(ctx context.Context, kind domain.RecordKind, recordID string) (*domain.FundRecord, error)

	// FindRecordByFundNeed retrieves the single record for a (kind, fund-need, year, month) triple.
	FindRecordByFundNeed(ctx context.Context, kind domain.RecordKind, need domain.FundNeed, year, month int) (*domain.FundRecord, error)

	// ListRecords retrieves a filtered, paginated record listing and the total match count.
	ListRecords(ctx context.Context, filter RecordFilter) ([]domain.FundRecord, int, error)
}

// RecordWriter defines write operations for fund record data
type RecordWriter interface {
	// SaveRecord inserts a new record row.
	SaveRecord(ctx context.Context, record domain.FundRecord) error

	// UpdateRecord updates the filer-editable fields of a record.
	UpdateRecord(ctx context.Context, record domain.FundRecord) error

	// UpdateRecordSubmission marks a record submitted, setting status and submitted_at.
	UpdateRecordSubmission(ctx context.Context, kind domain.RecordKind, recordID string, status domain.RecordStatus, submittedAt time.Time, updatedBy string, updatedAt time.Time) error
}

// RecordTxOps defines record operations that run inside a caller-owned transaction.
// The workflow engine uses these to lock and transition records atomically with
// withdrawal-request bookkeeping.
type RecordTxOps interface {
	// FindRecordForUpdate loads a record inside tx with a row-level lock (FOR UPDATE).
	FindRecordForUpdate(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (*domain.FundRecord, error)

	// UpdateRecordStatusInTx transitions a record's status inside tx.
	UpdateRecordStatusInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string, status domain.RecordStatus, updatedBy string, updatedAt time.Time) error
}

// RecordRepositoryFacade combines all record repository interfaces.
type RecordRepositoryFacade interface {
	RecordReader
	RecordWriter
	RecordTxOps
}

// RecordRepositoryWithTx extends RecordRepositoryFacade with transaction management.
type RecordRepositoryWithTx interface {
	RecordRepositoryFacade
	TransactionManager
}
