package pgsql

import (
	"context"
	"errors"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	"github.com/fingov/fund_reporting_app/internal/models"
	"github.com/fingov/fund_reporting_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWithdrawalConfigRepository struct {
	BaseRepository
}

// NewWithdrawalConfigRepository creates a new repository for withdrawal policy data.
func NewWithdrawalConfigRepository(pool *pgxpool.Pool) portsrepo.WithdrawalConfigRepository {
	return &PgxWithdrawalConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWithdrawalConfigRepository implements portsrepo.WithdrawalConfigRepository
var _ portsrepo.WithdrawalConfigRepository = (*PgxWithdrawalConfigRepository)(nil)

const configColumns = `
	module_type, allowed_statuses, time_limit_hours, max_attempts, requires_approval,
	created_at, created_by, last_updated_at, last_updated_by`

func scanConfig(row rowScanner) (*models.WithdrawalConfig, error) {
	var m models.WithdrawalConfig
	err := row.Scan(
		&m.ModuleType,
		&m.AllowedStatuses,
		&m.TimeLimitHours,
		&m.MaxAttempts,
		&m.RequiresApproval,
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

// FindConfigByModuleType retrieves the policy for a module type.
func (r *PgxWithdrawalConfigRepository) FindConfigByModuleType(ctx context.Context, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error) {
	query := `SELECT ` + configColumns + ` FROM withdrawal_configs WHERE module_type = $1;`
	m, err := scanConfig(r.Pool.QueryRow(ctx, query, string(moduleType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find withdrawal config for "+string(moduleType), err)
	}
	config := mapping.ToDomainWithdrawalConfig(*m)
	return &config, nil
}

// FindConfigByModuleTypeInTx is the same lookup inside a caller-owned transaction.
func (r *PgxWithdrawalConfigRepository) FindConfigByModuleTypeInTx(ctx context.Context, tx pgx.Tx, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error) {
	query := `SELECT ` + configColumns + ` FROM withdrawal_configs WHERE module_type = $1;`
	m, err := scanConfig(tx.QueryRow(ctx, query, string(moduleType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find withdrawal config for "+string(moduleType), err)
	}
	config := mapping.ToDomainWithdrawalConfig(*m)
	return &config, nil
}

// UpsertConfig inserts or overwrites the policy for its module type.
func (r *PgxWithdrawalConfigRepository) UpsertConfig(ctx context.Context, config domain.WithdrawalConfig) error {
	m := mapping.ToModelWithdrawalConfig(config)
	query := `
		INSERT INTO withdrawal_configs (
			module_type, allowed_statuses, time_limit_hours, max_attempts, requires_approval,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (module_type) DO UPDATE SET
			allowed_statuses = EXCLUDED.allowed_statuses,
			time_limit_hours = EXCLUDED.time_limit_hours,
			max_attempts = EXCLUDED.max_attempts,
			requires_approval = EXCLUDED.requires_approval,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ModuleType,
		m.AllowedStatuses,
		m.TimeLimitHours,
		m.MaxAttempts,
		m.RequiresApproval,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert withdrawal config for "+string(m.ModuleType), err)
	}
	return nil
}

// ListConfigs retrieves all stored policies.
func (r *PgxWithdrawalConfigRepository) ListConfigs(ctx context.Context) ([]domain.WithdrawalConfig, error) {
	query := `SELECT ` + configColumns + ` FROM withdrawal_configs ORDER BY module_type;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query withdrawal configs", err)
	}
	defer rows.Close()

	configs := []domain.WithdrawalConfig{}
	for rows.Next() {
		m, err := scanConfig(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan withdrawal config row", err)
		}
		configs = append(configs, mapping.ToDomainWithdrawalConfig(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating withdrawal config rows", err)
	}
	return configs, nil
}
