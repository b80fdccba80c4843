package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

const maxWithdrawalReasonLength = 500

// withdrawalService is the workflow engine behind withdrawal requests. All
// policy checks and state writes for one request happen inside a single
// transaction with the record row locked, so concurrent requests against the
// same record serialize and at most one pending request can ever exist.
type withdrawalService struct {
	withdrawalRepo portsrepo.WithdrawalRepositoryWithTx
	configRepo     portsrepo.WithdrawalConfigRepository
	recordRepo     portsrepo.RecordRepositoryFacade
	auditRepo      portsrepo.AuditEntryRepository
	userSvc        portssvc.UserSvcFacade
	notifier       portssvc.NotificationDispatcher
}

// NewWithdrawalService creates a new withdrawal workflow engine.
func NewWithdrawalService(
	withdrawalRepo portsrepo.WithdrawalRepositoryWithTx,
	configRepo portsrepo.WithdrawalConfigRepository,
	recordRepo portsrepo.RecordRepositoryFacade,
	auditRepo portsrepo.AuditEntryRepository,
	userSvc portssvc.UserSvcFacade,
	notifier portssvc.NotificationDispatcher,
) portssvc.WithdrawalEngineSvc {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		configRepo:     configRepo,
		recordRepo:     recordRepo,
		auditRepo:      auditRepo,
		userSvc:        userSvc,
		notifier:       notifier,
	}
}

var _ portssvc.WithdrawalEngineSvc = (*withdrawalService)(nil)

// RequestWithdrawal validates a withdrawal attempt against the module policy
// and creates the request. The checks run in a fixed order so the caller
// always gets the most specific refusal.
func (s *withdrawalService) RequestWithdrawal(ctx context.Context, kind domain.RecordKind, recordID string, requesterID string, reason string) (*domain.WithdrawalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reason = strings.TrimSpace(reason)
	if reason == "" || len(reason) > maxWithdrawalReasonLength {
		return nil, apperrors.NewWorkflowError(apperrors.TypeInvalidReason,
			fmt.Sprintf("reason must be between 1 and %d characters", maxWithdrawalReasonLength),
			map[string]any{"maxLength": maxWithdrawalReasonLength})
	}

	requester, err := s.userSvc.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester %s: %w", requesterID, err)
	}

	tx, err := s.withdrawalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.withdrawalRepo.Rollback(ctx, tx)
	}()

	// Check 1: the record must exist. The row lock taken here serializes
	// concurrent requests against the same record for the rest of the checks.
	record, err := s.recordRepo.FindRecordForUpdate(ctx, tx, kind, recordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewWorkflowError(apperrors.TypeRecordNotFound,
				"record not found",
				map[string]any{"recordType": kind.ModuleType(), "recordID": recordID})
		}
		return nil, fmt.Errorf("failed to load record %s/%s: %w", kind.ModuleType(), recordID, err)
	}

	// Check 2: a policy must be registered for the module. No policy means
	// withdrawal is disallowed, not allowed-by-default.
	config, err := s.configRepo.FindConfigByModuleTypeInTx(ctx, tx, kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewWorkflowError(apperrors.TypeConfigMissing,
				"no withdrawal policy is registered for this module",
				map[string]any{"moduleType": kind.ModuleType()})
		}
		return nil, fmt.Errorf("failed to load withdrawal config for %s: %w", kind.ModuleType(), err)
	}

	// Check 3: the record's current status must be withdrawable per policy.
	if !config.StatusAllowed(record.Status) {
		allowed := make([]string, len(config.AllowedStatuses))
		for i, st := range config.AllowedStatuses {
			allowed[i] = string(st)
		}
		return nil, apperrors.NewWorkflowError(apperrors.TypeStatusNotWithdrawable,
			"record status does not allow withdrawal",
			map[string]any{"currentStatus": string(record.Status), "allowedStatuses": allowed})
	}

	// Check 4: the time window since submission must still be open. A record
	// that was never submitted has nothing to time-bound.
	now := time.Now().UTC()
	if record.SubmittedAt != nil {
		elapsed := now.Sub(*record.SubmittedAt).Hours()
		if elapsed > float64(config.TimeLimitHours) {
			return nil, apperrors.NewWorkflowError(apperrors.TypeTimeLimitExceeded,
				"withdrawal time limit has passed",
				map[string]any{"hoursSinceSubmission": elapsed, "timeLimitHours": config.TimeLimitHours})
		}
	}

	// Check 5: the record must have attempts left.
	attempts, err := s.withdrawalRepo.CountRequestsByRecordInTx(ctx, tx, kind, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to count prior withdrawal requests: %w", err)
	}
	if attempts >= config.MaxAttempts {
		return nil, apperrors.NewWorkflowError(apperrors.TypeMaxAttemptsExceeded,
			"maximum withdrawal attempts reached",
			map[string]any{"attemptCount": attempts, "maxAttempts": config.MaxAttempts})
	}

	// Check 6: at most one pending request per record.
	pending, err := s.withdrawalRepo.FindPendingRequestByRecordInTx(ctx, tx, kind, recordID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up pending withdrawal request: %w", err)
	}
	if pending != nil {
		return nil, apperrors.NewWorkflowError(apperrors.TypeAlreadyPending,
			"a withdrawal request for this record is already pending",
			map[string]any{"pendingRequestID": pending.RequestID})
	}

	request := domain.WithdrawalRequest{
		RequestID:    uuid.NewString(),
		RecordKind:   kind,
		RecordID:     recordID,
		RequesterID:  requesterID,
		Reason:       reason,
		Status:       domain.WithdrawalPending,
		SourceStatus: record.Status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}

	oldSnapshot := snapshotRecord(record)
	var targetStatus domain.RecordStatus
	var action, remarks string
	if config.RequiresApproval {
		targetStatus = domain.StatusPendingWithdrawal
		action = domain.ActionWithdrawalPending
		remarks = "withdrawal requested: " + reason
	} else {
		request.Status = domain.WithdrawalApproved
		request.ReviewedAt = &now
		targetStatus = domain.StatusWithdrawn
		action = domain.ActionWithdrawn
		remarks = "withdrawn without review: " + reason
	}

	if err := s.withdrawalRepo.InsertRequestInTx(ctx, tx, request); err != nil {
		// The partial unique index backs check 6 under concurrency: if two
		// requests race past the lookup, the second insert hits it.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewWorkflowError(apperrors.TypeAlreadyPending,
				"a withdrawal request for this record is already pending", nil)
		}
		return nil, fmt.Errorf("failed to insert withdrawal request: %w", err)
	}

	if err := s.recordRepo.UpdateRecordStatusInTx(ctx, tx, kind, recordID, targetStatus, requesterID, now); err != nil {
		return nil, fmt.Errorf("failed to transition record status: %w", err)
	}

	record.Status = targetStatus
	entry := domain.AuditEntry{
		RecordKind:   kind,
		RecordID:     recordID,
		ActingUserID: requesterID,
		ActorRole:    requester.Role,
		Action:       action,
		OldValue:     oldSnapshot,
		NewValue:     snapshotRecord(record),
		Remarks:      remarks,
		CreatedAt:    now,
	}
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := s.withdrawalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal request: %w", err)
	}

	// Fan-out happens after commit so a notification failure can never roll
	// back the state transition. The fast path notifies nobody.
	if config.RequiresApproval {
		s.notifyAdmins(ctx, &request, requester)
	}

	logger.Info("withdrawal request created",
		slog.String("request_id", request.RequestID),
		slog.String("record_type", kind.ModuleType()),
		slog.String("record_id", recordID),
		slog.String("status", string(request.Status)))
	return &request, nil
}

// ReviewWithdrawal applies an admin decision to a pending request. The
// conditional finalize makes the operation idempotent: a request leaves
// PENDING exactly once, and a retry or concurrent review gets AlreadyProcessed.
func (s *withdrawalService) ReviewWithdrawal(ctx context.Context, requestID string, adminID string, decision domain.ReviewDecision, comment *string) (*domain.WithdrawalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	admin, err := s.userSvc.GetUserByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewWorkflowError(apperrors.TypeForbidden,
				"reviewer does not hold the admin capability", nil)
		}
		return nil, fmt.Errorf("failed to load reviewer %s: %w", adminID, err)
	}
	if !admin.Role.HasAdminCapability() {
		return nil, apperrors.NewWorkflowError(apperrors.TypeForbidden,
			"reviewer does not hold the admin capability",
			map[string]any{"role": string(admin.Role)})
	}

	tx, err := s.withdrawalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = s.withdrawalRepo.Rollback(ctx, tx)
	}()

	request, err := s.withdrawalRepo.FindRequestByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewWorkflowError(apperrors.TypeRequestNotFound,
				"withdrawal request not found",
				map[string]any{"requestID": requestID})
		}
		return nil, fmt.Errorf("failed to load withdrawal request %s: %w", requestID, err)
	}
	if request.Status != domain.WithdrawalPending {
		return nil, apperrors.NewWorkflowError(apperrors.TypeAlreadyProcessed,
			"withdrawal request has already been reviewed",
			map[string]any{"status": string(request.Status)})
	}

	now := time.Now().UTC()
	finalStatus := domain.WithdrawalRejected
	if decision == domain.DecisionApproved {
		finalStatus = domain.WithdrawalApproved
	}

	rows, err := s.withdrawalRepo.FinalizeRequestInTx(ctx, tx, requestID, finalStatus, &adminID, comment, now, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize withdrawal request: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.NewWorkflowError(apperrors.TypeAlreadyProcessed,
			"withdrawal request has already been reviewed", nil)
	}

	record, err := s.recordRepo.FindRecordForUpdate(ctx, tx, request.RecordKind, request.RecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record for review: %w", err)
	}
	oldSnapshot := snapshotRecord(record)

	var targetStatus domain.RecordStatus
	var action, remarks string
	if finalStatus == domain.WithdrawalApproved {
		targetStatus = domain.StatusWithdrawn
		action = domain.ActionWithdrawn
		remarks = "admin approved"
	} else {
		// Rejection puts the record back where the request found it.
		targetStatus = request.SourceStatus
		action = domain.ActionWithdrawalDenied
		remarks = "admin rejected"
	}
	if comment != nil && *comment != "" {
		remarks = remarks + ": " + *comment
	}

	if err := s.recordRepo.UpdateRecordStatusInTx(ctx, tx, request.RecordKind, request.RecordID, targetStatus, adminID, now); err != nil {
		return nil, fmt.Errorf("failed to transition record status: %w", err)
	}

	record.Status = targetStatus
	entry := domain.AuditEntry{
		RecordKind:   request.RecordKind,
		RecordID:     request.RecordID,
		ActingUserID: adminID,
		ActorRole:    admin.Role,
		Action:       action,
		OldValue:     oldSnapshot,
		NewValue:     snapshotRecord(record),
		Remarks:      remarks,
		CreatedAt:    now,
	}
	if err := s.auditRepo.AppendEntryInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := s.withdrawalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal review: %w", err)
	}

	request.Status = finalStatus
	request.AdminID = &adminID
	request.AdminComment = comment
	request.ReviewedAt = &now
	request.LastUpdatedAt = now
	request.LastUpdatedBy = adminID

	s.notifyRequester(ctx, request, finalStatus)

	logger.Info("withdrawal request reviewed",
		slog.String("request_id", requestID),
		slog.String("decision", string(finalStatus)),
		slog.String("admin_id", adminID))
	return request, nil
}

// ListRequests retrieves a filtered page of withdrawal requests for the
// approval console.
func (s *withdrawalService) ListRequests(ctx context.Context, params dto.ListWithdrawalRequestsParams) (*dto.ListWithdrawalRequestsResponse, error) {
	filter := portsrepo.WithdrawalRequestFilter{
		Limit:  params.PageSize,
		Offset: (params.Page - 1) * params.PageSize,
	}
	if params.Status != nil {
		status := domain.WithdrawalStatus(*params.Status)
		filter.Status = &status
	}
	if params.ModuleType != nil {
		kind, err := domain.ParseRecordKind(*params.ModuleType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.ModuleType = &kind
	}

	requests, total, err := s.withdrawalRepo.ListRequests(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawal requests: %w", err)
	}

	resp := dto.ListWithdrawalRequestsResponse{
		Requests: make([]dto.WithdrawalRequestResponse, len(requests)),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	for i := range requests {
		resp.Requests[i] = dto.ToWithdrawalRequestResponse(&requests[i])
	}
	return &resp, nil
}

// notifyAdmins sends one notification per admin-capable user about a new
// pending request. Best effort: lookup or dispatch failures are logged only.
func (s *withdrawalService) notifyAdmins(ctx context.Context, request *domain.WithdrawalRequest, requester *domain.User) {
	logger := middleware.GetLoggerFromCtx(ctx)

	admins, err := s.userSvc.ListAdmins(ctx)
	if err != nil {
		logger.Error("failed to list admins for withdrawal notification",
			slog.String("request_id", request.RequestID), slog.String("error", err.Error()))
		return
	}

	now := time.Now().UTC()
	notifications := make([]domain.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         admin.UserID,
			Title:          "Withdrawal request awaiting review",
			Body: fmt.Sprintf("%s requested withdrawal of %s record %s: %s",
				requester.Name, request.RecordKind.ModuleType(), request.RecordID, request.Reason),
			Type:        domain.NotifyWithdrawalRequested,
			RelatedID:   request.RequestID,
			RelatedType: "withdrawal_request",
			CreatedAt:   now,
		})
	}
	s.notifier.Dispatch(ctx, notifications...)
}

// notifyRequester tells the original requester how their request was decided.
func (s *withdrawalService) notifyRequester(ctx context.Context, request *domain.WithdrawalRequest, finalStatus domain.WithdrawalStatus) {
	verdict := "rejected"
	if finalStatus == domain.WithdrawalApproved {
		verdict = "approved"
	}
	s.notifier.Dispatch(ctx, domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         request.RequesterID,
		Title:          fmt.Sprintf("Withdrawal request %s", verdict),
		Body: fmt.Sprintf("Your withdrawal request for %s record %s was %s",
			request.RecordKind.ModuleType(), request.RecordID, verdict),
		Type:        domain.NotifyWithdrawalReviewed,
		RelatedID:   request.RequestID,
		RelatedType: "withdrawal_request",
		CreatedAt:   time.Now().UTC(),
	})
}

// snapshotRecord serializes a record for audit old/new value columns. A
// serialization failure degrades to an empty snapshot rather than failing the
// transition itself.
func snapshotRecord(record *domain.FundRecord) []byte {
	b, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	return b
}
