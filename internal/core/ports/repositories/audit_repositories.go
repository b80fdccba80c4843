package repositories

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditEntryRepository defines the append-only audit trail storage. Entries are
// written exclusively inside engine transactions and never updated or deleted.
type AuditEntryRepository interface {
	// AppendEntryInTx appends one audit entry inside a caller-owned transaction.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error

	// ListEntriesByRecord retrieves the trail for one record, oldest first.
	ListEntriesByRecord(ctx context.Context, kind domain.RecordKind, recordID string) ([]domain.AuditEntry, error)
}
