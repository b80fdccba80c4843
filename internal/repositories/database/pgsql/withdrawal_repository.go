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

type PgxWithdrawalRepository struct {
	BaseRepository
}

// NewWithdrawalRepository creates a new repository for withdrawal request data.
func NewWithdrawalRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRepositoryWithTx {
	return &PgxWithdrawalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWithdrawalRepository implements portsrepo.WithdrawalRepositoryWithTx
var _ portsrepo.WithdrawalRepositoryWithTx = (*PgxWithdrawalRepository)(nil)

const requestColumns = `
	request_id, record_kind, record_id, requester_id, reason, status, source_status,
	admin_id, admin_comment, reviewed_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row rowScanner) (*models.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	err := row.Scan(
		&m.RequestID,
		&m.RecordKind,
		&m.RecordID,
		&m.RequesterID,
		&m.Reason,
		&m.Status,
		&m.SourceStatus,
		&m.AdminID,
		&m.AdminComment,
		&m.ReviewedAt,
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

// FindRequestByID retrieves a request by id.
func (r *PgxWithdrawalRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM withdrawal_requests WHERE request_id = $1;`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find withdrawal request "+requestID, err)
	}
	request := mapping.ToDomainWithdrawalRequest(*m)
	return &request, nil
}

// CountRequestsByRecordInTx counts all requests ever made against one record.
func (r *PgxWithdrawalRepository) CountRequestsByRecordInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (int, error) {
	query := `SELECT COUNT(*) FROM withdrawal_requests WHERE record_kind = $1 AND record_id = $2;`
	var count int
	if err := tx.QueryRow(ctx, query, string(kind), recordID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count withdrawal requests for record "+recordID, err)
	}
	return count, nil
}

// FindPendingRequestByRecordInTx returns the pending request for a record, if any.
func (r *PgxWithdrawalRepository) FindPendingRequestByRecordInTx(ctx context.Context, tx pgx.Tx, kind domain.RecordKind, recordID string) (*domain.WithdrawalRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM withdrawal_requests
		WHERE record_kind = $1 AND record_id = $2 AND status = 'PENDING';
	`
	m, err := scanRequest(tx.QueryRow(ctx, query, string(kind), recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pending withdrawal request for record "+recordID, err)
	}
	request := mapping.ToDomainWithdrawalRequest(*m)
	return &request, nil
}

// InsertRequestInTx inserts a new withdrawal request row. A second pending
// request for the same record violates the partial unique index and surfaces
// as apperrors.ErrDuplicate.
func (r *PgxWithdrawalRepository) InsertRequestInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error {
	m := mapping.ToModelWithdrawalRequest(request)
	query := `
		INSERT INTO withdrawal_requests (
			request_id, record_kind, record_id, requester_id, reason, status, source_status,
			admin_id, admin_comment, reviewed_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.RequestID,
		m.RecordKind,
		m.RecordID,
		m.RequesterID,
		m.Reason,
		m.Status,
		m.SourceStatus,
		m.AdminID,
		m.AdminComment,
		m.ReviewedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert withdrawal request "+m.RequestID, err)
	}
	return nil
}

// FindRequestByIDForUpdate loads a request inside tx with a row-level lock.
func (r *PgxWithdrawalRepository) FindRequestByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM withdrawal_requests WHERE request_id = $1 FOR UPDATE;`
	m, err := scanRequest(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock withdrawal request "+requestID, err)
	}
	request := mapping.ToDomainWithdrawalRequest(*m)
	return &request, nil
}

// FinalizeRequestInTx conditionally moves a request out of PENDING. Zero rows
// affected means the request was already processed; the caller decides how to
// report that.
func (r *PgxWithdrawalRepository) FinalizeRequestInTx(ctx context.Context, tx pgx.Tx, requestID string, status domain.WithdrawalStatus, adminID *string, adminComment *string, reviewedAt time.Time, updatedBy string) (int64, error) {
	query := `
		UPDATE withdrawal_requests
		SET status = $2,
		    admin_id = $3,
		    admin_comment = $4,
		    reviewed_at = $5,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE request_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, query, requestID, string(status), adminID, adminComment, reviewedAt, updatedBy)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to finalize withdrawal request "+requestID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// ListRequests retrieves a filtered, paginated request listing and the total match count.
func (r *PgxWithdrawalRepository) ListRequests(ctx context.Context, filter portsrepo.WithdrawalRequestFilter) ([]domain.WithdrawalRequest, int, error) {
	whereClause := `WHERE 1=1`
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		whereClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.ModuleType != nil {
		args = append(args, string(*filter.ModuleType))
		whereClause += ` AND record_kind = $` + strconv.Itoa(len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM withdrawal_requests ` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count withdrawal requests", err)
	}

	args = append(args, filter.Limit)
	limitPos := strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPos := strconv.Itoa(len(args))
	query := `
		SELECT ` + requestColumns + `
		FROM withdrawal_requests ` + whereClause + `
		ORDER BY created_at DESC
		LIMIT $` + limitPos + ` OFFSET $` + offsetPos + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query withdrawal requests", err)
	}
	defer rows.Close()

	requests := []models.WithdrawalRequest{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan withdrawal request row", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating withdrawal request rows", err)
	}

	return mapping.ToDomainWithdrawalRequestSlice(requests), total, nil
}
