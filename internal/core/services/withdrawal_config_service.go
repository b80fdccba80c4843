package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

// withdrawalConfigService manages the per-module withdrawal policy registry.
type withdrawalConfigService struct {
	configRepo portsrepo.WithdrawalConfigRepository
}

// NewWithdrawalConfigService creates a new policy registry service.
func NewWithdrawalConfigService(configRepo portsrepo.WithdrawalConfigRepository) portssvc.WithdrawalConfigSvc {
	return &withdrawalConfigService{configRepo: configRepo}
}

var _ portssvc.WithdrawalConfigSvc = (*withdrawalConfigService)(nil)

// GetConfig retrieves the policy for a module type.
func (s *withdrawalConfigService) GetConfig(ctx context.Context, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error) {
	return s.configRepo.FindConfigByModuleType(ctx, moduleType)
}

// UpsertConfig creates or overwrites the policy for a module type. The upsert
// is idempotent: repeating the same payload yields the same stored row.
func (s *withdrawalConfigService) UpsertConfig(ctx context.Context, moduleType domain.RecordKind, req dto.UpsertWithdrawalConfigRequest, updaterUserID string) (*domain.WithdrawalConfig, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	allowed := make([]domain.RecordStatus, 0, len(req.AllowedStatuses))
	seen := make(map[domain.RecordStatus]bool, len(req.AllowedStatuses))
	for _, raw := range req.AllowedStatuses {
		status, err := domain.ParseRecordStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		if !seen[status] {
			seen[status] = true
			allowed = append(allowed, status)
		}
	}

	now := time.Now().UTC()
	config := domain.WithdrawalConfig{
		ModuleType:       moduleType,
		AllowedStatuses:  allowed,
		TimeLimitHours:   req.TimeLimitHours,
		MaxAttempts:      req.MaxAttempts,
		RequiresApproval: *req.RequiresApproval,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}
	if err := s.configRepo.UpsertConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to upsert withdrawal config for %s: %w", moduleType.ModuleType(), err)
	}

	logger.Info("withdrawal config upserted",
		slog.String("module_type", moduleType.ModuleType()),
		slog.Bool("requires_approval", config.RequiresApproval))

	// Read back so the caller sees the stored row, including preserved
	// created_at on overwrite.
	return s.configRepo.FindConfigByModuleType(ctx, moduleType)
}

// ListConfigs retrieves every stored policy.
func (s *withdrawalConfigService) ListConfigs(ctx context.Context) ([]domain.WithdrawalConfig, error) {
	return s.configRepo.ListConfigs(ctx)
}
