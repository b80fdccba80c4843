package services

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

// RecordReaderSvc defines read operations for fund records.
type RecordReaderSvc interface {
	// GetRecord retrieves a record by kind and id.
	GetRecord(ctx context.Context, kind domain.RecordKind, recordID string) (*domain.FundRecord, error)

	// ListRecords retrieves a filtered page of records.
	ListRecords(ctx context.Context, params dto.ListRecordsParams) (*dto.ListRecordsResponse, error)

	// ListAuditTrail retrieves the audit trail of one record, oldest first.
	ListAuditTrail(ctx context.Context, kind domain.RecordKind, recordID string) ([]domain.AuditEntry, error)
}

// RecordWriterSvc defines the filer-facing write operations for fund records.
type RecordWriterSvc interface {
	// SaveDraft creates the draft record for a fund-need/year/month triple, or
	// updates it when a draft (or withdrawn record) already exists.
	SaveDraft(ctx context.Context, req dto.SaveDraftRequest, userID string) (*domain.FundRecord, error)

	// UpdateDraft updates the editable fields of an existing draft.
	UpdateDraft(ctx context.Context, kind domain.RecordKind, recordID string, req dto.UpdateDraftRequest, userID string) (*domain.FundRecord, error)

	// Submit moves a draft to SUBMITTED and stamps the submission time. Each
	// submission restarts the withdrawal time-limit clock.
	Submit(ctx context.Context, kind domain.RecordKind, recordID string, userID string) (*domain.FundRecord, error)
}

// RecordSvcFacade combines all record service interfaces.
type RecordSvcFacade interface {
	RecordReaderSvc
	RecordWriterSvc
}
