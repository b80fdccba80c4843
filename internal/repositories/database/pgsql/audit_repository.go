package pgsql

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	"github.com/fingov/fund_reporting_app/internal/models"
	"github.com/fingov/fund_reporting_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// NewAuditRepository creates a new repository for the append-only audit trail.
func NewAuditRepository(pool *pgxpool.Pool) portsrepo.AuditEntryRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditEntryRepository
var _ portsrepo.AuditEntryRepository = (*PgxAuditRepository)(nil)

// AppendEntryInTx appends one audit entry inside a caller-owned transaction.
// There is no update or delete path; entries are immutable once written.
func (r *PgxAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_entries (
			record_kind, record_id, acting_user_id, actor_role, action,
			old_value, new_value, remarks, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.RecordKind,
		m.RecordID,
		m.ActingUserID,
		m.ActorRole,
		m.Action,
		m.OldValue,
		m.NewValue,
		m.Remarks,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit entry for record "+m.RecordID, err)
	}
	return nil
}

// ListEntriesByRecord retrieves the trail for one record, oldest first.
// entry_seq breaks created_at ties so ordering matches insertion order.
func (r *PgxAuditRepository) ListEntriesByRecord(ctx context.Context, kind domain.RecordKind, recordID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT entry_seq, record_kind, record_id, acting_user_id, actor_role, action,
		       old_value, new_value, remarks, created_at
		FROM audit_entries
		WHERE record_kind = $1 AND record_id = $2
		ORDER BY created_at, entry_seq;
	`
	rows, err := r.Pool.Query(ctx, query, string(kind), recordID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries for record "+recordID, err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		err := rows.Scan(
			&m.EntrySeq,
			&m.RecordKind,
			&m.RecordID,
			&m.ActingUserID,
			&m.ActorRole,
			&m.Action,
			&m.OldValue,
			&m.NewValue,
			&m.Remarks,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry row for record "+recordID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entry rows for record "+recordID, err)
	}

	return mapping.ToDomainAuditEntrySlice(entries), nil
}
