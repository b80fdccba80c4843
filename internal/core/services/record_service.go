package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

// recordService manages the fund record lifecycle on the filer side: draft
// creation, edits, and submission. Withdrawal transitions belong to the
// workflow engine, not here.
type recordService struct {
	recordRepo portsrepo.RecordRepositoryFacade
	auditRepo  portsrepo.AuditEntryRepository
}

// NewRecordService creates a new record service.
func NewRecordService(recordRepo portsrepo.RecordRepositoryFacade, auditRepo portsrepo.AuditEntryRepository) portssvc.RecordSvcFacade {
	return &recordService{recordRepo: recordRepo, auditRepo: auditRepo}
}

var _ portssvc.RecordSvcFacade = (*recordService)(nil)

// SaveDraft creates the draft record for a fund-need/year/month triple. At most
// one record exists per triple: if one is already there and still editable, the
// call updates it instead (a withdrawn record re-opens as a draft).
func (s *recordService) SaveDraft(ctx context.Context, req dto.SaveDraftRequest, userID string) (*domain.FundRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind, err := domain.ParseRecordKind(req.RecordType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	need := domain.FundNeed{
		OrgID:        req.OrgID,
		DepartmentID: req.DepartmentID,
		SubProjectID: req.SubProjectID,
		FundType:     req.FundType,
	}

	now := time.Now().UTC()
	existing, err := s.recordRepo.FindRecordByFundNeed(ctx, kind, need, req.Year, req.Month)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up existing record: %w", err)
	}

	if existing != nil {
		if !existing.Editable() {
			return nil, fmt.Errorf("%w: a record for this period already exists with status %s", apperrors.ErrDuplicate, existing.Status)
		}
		existing.Amount = req.Amount
		existing.Remark = req.Remark
		existing.Status = domain.StatusDraft
		existing.LastUpdatedAt = now
		existing.LastUpdatedBy = userID
		if err := s.recordRepo.UpdateRecord(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to update draft: %w", err)
		}
		return existing, nil
	}

	record := domain.FundRecord{
		RecordID:    uuid.NewString(),
		Kind:        kind,
		FundNeed:    need,
		Year:        req.Year,
		Month:       req.Month,
		Amount:      req.Amount,
		Status:      domain.StatusDraft,
		Remark:      req.Remark,
		SubmitterID: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.recordRepo.SaveRecord(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a record for this period already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	logger.Info("draft record created",
		slog.String("record_id", record.RecordID),
		slog.String("record_type", kind.ModuleType()),
		slog.Int("year", req.Year),
		slog.Int("month", req.Month))
	return &record, nil
}

// UpdateDraft updates the editable fields of an existing draft or withdrawn
// record. A withdrawn record reverts to DRAFT when touched.
func (s *recordService) UpdateDraft(ctx context.Context, kind domain.RecordKind, recordID string, req dto.UpdateDraftRequest, userID string) (*domain.FundRecord, error) {
	record, err := s.recordRepo.FindRecordByID(ctx, kind, recordID)
	if err != nil {
		return nil, err
	}
	if !record.Editable() {
		return nil, fmt.Errorf("%w: record with status %s cannot be edited", apperrors.ErrValidation, record.Status)
	}

	if req.Amount != nil {
		record.Amount = req.Amount
	}
	if req.Remark != nil {
		record.Remark = *req.Remark
	}
	record.Status = domain.StatusDraft
	record.LastUpdatedAt = time.Now().UTC()
	record.LastUpdatedBy = userID

	if err := s.recordRepo.UpdateRecord(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}
	return record, nil
}

// Submit moves a draft (or re-opened withdrawn record) to SUBMITTED and stamps
// the submission time. Each submission restarts the withdrawal time limit.
func (s *recordService) Submit(ctx context.Context, kind domain.RecordKind, recordID string, userID string) (*domain.FundRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.recordRepo.FindRecordByID(ctx, kind, recordID)
	if err != nil {
		return nil, err
	}
	if !record.Editable() {
		return nil, fmt.Errorf("%w: record with status %s cannot be submitted", apperrors.ErrValidation, record.Status)
	}
	if record.Amount == nil {
		return nil, fmt.Errorf("%w: amount must be filled before submission", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.recordRepo.UpdateRecordSubmission(ctx, kind, recordID, domain.StatusSubmitted, now, userID, now); err != nil {
		return nil, fmt.Errorf("failed to submit record: %w", err)
	}

	record.Status = domain.StatusSubmitted
	record.SubmittedAt = &now
	record.SubmitterID = userID
	record.LastUpdatedAt = now
	record.LastUpdatedBy = userID

	logger.Info("record submitted",
		slog.String("record_id", recordID),
		slog.String("record_type", kind.ModuleType()))
	return record, nil
}

// GetRecord retrieves a record by kind and id.
func (s *recordService) GetRecord(ctx context.Context, kind domain.RecordKind, recordID string) (*domain.FundRecord, error) {
	return s.recordRepo.FindRecordByID(ctx, kind, recordID)
}

// ListRecords retrieves a filtered page of records.
func (s *recordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error) {
	kind, err := domain.ParseRecordKind(params.RecordType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	filter := portsrepo.RecordFilter{
		Kind:   kind,
		Year:   params.Year,
		Month:  params.Month,
		Limit:  params.PageSize,
		Offset: (params.Page - 1) * params.PageSize,
	}
	if params.Status != nil {
		status, err := domain.ParseRecordStatus(*params.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.Status = &status
	}

	records, total, err := s.recordRepo.ListRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	resp := dto.ListRecordsResponse{
		Records:  make([]dto.FundRecordResponse, len(records)),
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	for i := range records {
		resp.Records[i] = dto.ToFundRecordResponse(&records[i])
	}
	return &resp, nil
}

// ListAuditTrail retrieves the audit trail of one record, oldest first. The
// record must exist; an empty trail on an existing record is a valid result.
func (s *recordService) ListAuditTrail(ctx context.Context, kind domain.RecordKind, recordID string) ([]domain.AuditEntry, error) {
	if _, err := s.recordRepo.FindRecordByID(ctx, kind, recordID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListEntriesByRecord(ctx, kind, recordID)
}
