package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	"github.com/fingov/fund_reporting_app/internal/models"
	"github.com/fingov/fund_reporting_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecordRepository struct {
	BaseRepository
}

// NewRecordRepository creates a new repository for fund record data.
func NewRecordRepository(pool *pgxpool.Pool) portsrepo.RecordRepositoryWithTx {
	return &PgxRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRecordRepository implements portsrepo.RecordRepositoryWithTx
var _ portsrepo.RecordRepositoryWithTx = (*PgxRecordRepository)(nil)

const recordColumns = `
	record_id, kind, org_id, department_id, sub_project_id, fund_type, year, month,
	amount, status, remark, submitter_id, submitted_at,
	created_at, created_by, last_updated_at, last_updated_by`

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.FundRecord, error) {
	var m models.FundRecord
	err := row.Scan(
		&m.RecordID,
		&m.Kind,
		&m.OrgID,
		&m.DepartmentID,
		&m.SubProjectID,
		&m.FundType,
		&m.Year,
		&m.Month,
		&m.Amount,
		&m.Status,
		&m.Remark,
		&m.SubmitterID,
		&m.SubmittedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRecord inserts a new fund record row.
func (r *PgxRecordRepository) SaveRecord(ctx context.Context, record domain.FundRecord) error {
	m := mapping.ToModelFundRecord(record)
	query := `
		INSERT INTO fund_records (
			record_id, kind, org_id, department_id, sub_project_id, fund_type, year, month,
			amount, status, remark, submitter_id, submitted_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RecordID,
		m.Kind,
		m.OrgID,
		m.DepartmentID,
		m.SubProjectID,
		m.FundType,
		m.Year,
		m.Month,
		m.Amount,
		m.Status,
		m.Remark,
		m.SubmitterID,
		m.SubmittedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert fund record "+m.RecordID, err)
	}
	return nil
}

// UpdateRecord updates the filer-editable fields of a record.
func (r *PgxRecordRepository) UpdateRecord(ctx context.Context, record domain.FundRecord) error {
	m := mapping.ToModelFundRecord(record)
	query := `
		UPDATE fund_records
		SET amount = $3,
		    status = $4,
		    remark = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE kind = $1 AND record_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Kind,
		m.RecordID,
		m.Amount,
		m.Status,
		m.Remark,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fund record "+m.RecordID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fund record " + m.RecordID + " not found for update")
	}
	return nil
}

// UpdateRecordSubmission marks a record submitted, stamping the submission time.
func (r *PgxRecordRepository) UpdateRecordSubmission(ctx context.Context, kind domain.RecordKind, recordID string, status domain.RecordStatus, submittedAt time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fund_records
		SET status = $3,
		    submitted_at = $4,
		    submitter_id = $5,
		    last_updated_at = $6,
		    last_updated_by = $5
		WHERE kind = $1 AND record_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, string(kind), recordID, string(status), submittedAt, updatedBy, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark fund record "+recordID+" submitted", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fund record " + recordID + " not found for submission")
	}
	return nil
}

// FindRecordByID retrieves a record by its kind and id.
func (r *PgxRecordRepository) FindRecordByID(ctx context.Context, kind domain.RecordKind, recordID string) (*domain.FundRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM fund_records WHERE kind = $1 AND record_id = $2;`
	m, err := scanRecord(r.Pool.QueryRow(ctx, query, string(kind), recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fund record "+recordID, err)
	}
	record := mapping.ToDomainFundRecord(*m)
	return &record, nil
}

// FindRecordByFundNeed retrieves the single record for a (kind, fund-need, year, month) triple.
func (r *PgxRecordRepository) FindRecordByFundNeed(ctx context.Context, kind domain.RecordKind, need domain.FundNeed, year, month int) (*domain.FundRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM fund_records
		WHERE kind = $1 AND org_id = $2 AND department_id = $3 AND sub_project_id = $4
		  AND fund_type = $5 AND year = $6 AND month = $7;
	`
	m, err := scanRecord(r.Pool.QueryRow(ctx, query,
		string(kind), need.OrgID, need.DepartmentID, need.SubProjectID, need.FundType, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fund record by fund need", err)
	}
	record := mapping.ToDomainFundRecord(*m)
	return &record, nil
}

// FindRecordForUpdate loads a record inside tx with a row-level lock. The
// workflow engine holds this lock while it validates and creates a request.
func (r *PgxRecordRepository) FindRecordForUpdate(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (*domain.FundRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM fund_records WHERE kind = $1 AND record_id = $2 FOR UPDATE;`
	m, err := scanRecord(tx.QueryRow(ctx, query, string(kind), recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock fund record "+recordID, err)
	}
	record := mapping.ToDomainFundRecord(*m)
	return &record, nil
}

// UpdateRecordStatusInTx transitions a record's status inside tx.
func (r *PgxRecordRepository) UpdateRecordStatusInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string, status domain.RecordStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE fund_records
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE kind = $1 AND record_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, string(kind), recordID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of fund record "+recordID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("fund record " + recordID + " not found for status update")
	}
	return nil
}

// ListRecords retrieves a filtered, paginated record listing and the total match count.
func (r *PgxRecordRepository) ListRecords(ctx context.Context, filter portsrepo.RecordFilter) ([]domain.FundRecord, int, error) {
	whereClause := `WHERE kind = $1`
	args := []interface{}{string(filter.Kind)}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		whereClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		whereClause += ` AND year = $` + strconv.Itoa(len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		whereClause += ` AND month = $` + strconv.Itoa(len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM fund_records ` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count fund records", err)
	}

	args = append(args, filter.Limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPos := strconv.Itoa(len(args))
	query := `
		SELECT ` + recordColumns + `
		FROM fund_records ` + whereClause + `
		ORDER BY year DESC, month DESC, created_at DESC
		LIMIT $` + limitPos + ` OFFSET $` + offsetPos + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query fund records", err)
	}
	defer rows.Close()

	records := []models.FundRecord{}
	for rows.Next() {
		m, err := scanRecord(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan fund record row", err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating fund record rows", err)
	}

	return mapping.ToDomainFundRecordSlice(records), total, nil
}
