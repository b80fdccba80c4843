package services

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

// WithdrawalEngineSvc is the withdrawal workflow engine: it validates and
// executes withdrawal requests against the module policy, records state
// transitions and produces audit/notification side effects.
type WithdrawalEngineSvc interface {
	// RequestWithdrawal runs the policy checks and creates a withdrawal request.
	// Depending on policy it either finalizes the request in the same transaction
	// or leaves it pending for admin review.
	RequestWithdrawal(ctx context.Context, kind domain.RecordKind, recordID string, requesterID string, reason string) (*domain.WithdrawalRequest, error)

	// ReviewWithdrawal applies an admin decision to a pending request, exactly once.
	ReviewWithdrawal(ctx context.Context, requestID string, adminID string, decision domain.ReviewDecision, comment *string) (*domain.WithdrawalRequest, error)

	// ListRequests retrieves a filtered page of withdrawal requests for the approval console.
	ListRequests(ctx context.Context, params dto.ListWithdrawalRequestsParams) (*dto.ListWithdrawalRequestsResponse, error)
}

// WithdrawalConfigSvc is the per-module withdrawal policy registry.
type WithdrawalConfigSvc interface {
	// GetConfig retrieves the policy for a module type, or apperrors.ErrNotFound.
	GetConfig(ctx context.Context, moduleType domain.RecordKind) (*domain.WithdrawalConfig, error)

	// UpsertConfig creates or overwrites the policy for a module type.
	UpsertConfig(ctx context.Context, moduleType domain.RecordKind, req dto.UpsertWithdrawalConfigRequest, updaterUserID string) (*domain.WithdrawalConfig, error)

	// ListConfigs retrieves every stored policy.
	ListConfigs(ctx context.Context) ([]domain.WithdrawalConfig, error)
}
