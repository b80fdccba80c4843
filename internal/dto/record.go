package dto

import (
	"time"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveDraftRequest creates (or re-opens) the draft record for one
// fund-need/year/month triple.
type SaveDraftRequest struct {
	RecordType   string           `json:"recordType" binding:"required,oneof=predict actual_user actual_fin audit"`
	OrgID        string           `json:"orgID" binding:"required"`
	DepartmentID string           `json:"departmentID" binding:"required"`
	SubProjectID string           `json:"subProjectID" binding:"required"`
	FundType     string           `json:"fundType" binding:"required"`
	Year         int              `json:"year" binding:"required,min=2000,max=2100"`
	Month        int              `json:"month" binding:"required,min=1,max=12"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Remark       string           `json:"remark"`
}

// UpdateDraftRequest updates the filer-editable fields of an existing draft.
type UpdateDraftRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Remark *string          `json:"remark,omitempty"`
}

// FundRecordResponse is the API shape of a fund record.
type FundRecordResponse struct {
	RecordID     string           `json:"recordID"`
	RecordType   string           `json:"recordType"`
	OrgID        string           `json:"orgID"`
	DepartmentID string           `json:"departmentID"`
	SubProjectID string           `json:"subProjectID"`
	FundType     string           `json:"fundType"`
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Status       string           `json:"status"`
	Remark       string           `json:"remark"`
	SubmitterID  string           `json:"submitterID,omitempty"`
	SubmittedAt  *time.Time       `json:"submittedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ToFundRecordResponse converts a domain FundRecord to its API shape.
func ToFundRecordResponse(r *domain.FundRecord) FundRecordResponse {
	return FundRecordResponse{
		RecordID:     r.RecordID,
		RecordType:   r.Kind.ModuleType(),
		OrgID:        r.FundNeed.OrgID,
		DepartmentID: r.FundNeed.DepartmentID,
		SubProjectID: r.FundNeed.SubProjectID,
		FundType:     r.FundNeed.FundType,
		Year:         r.Year,
		Month:        r.Month,
		Amount:       r.Amount,
		Status:       string(r.Status),
		Remark:       r.Remark,
		SubmitterID:  r.SubmitterID,
		SubmittedAt:  r.SubmittedAt,
		CreatedAt:    r.CreatedAt,
	}
}

// ListRecordsParams are the record list filters.
type ListRecordsParams struct {
	RecordType string  `form:"recordType" binding:"required,oneof=predict actual_user actual_fin audit"`
	Status     *string `form:"status" binding:"omitempty"`
	Year       *int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month      *int    `form:"month" binding:"omitempty,min=1,max=12"`
	Page       int     `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int     `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// ListRecordsResponse is a page of fund records.
type ListRecordsResponse struct {
	Records  []FundRecordResponse `json:"records"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

// AuditEntryResponse is the API shape of one audit trail entry.
type AuditEntryResponse struct {
	EntrySeq     int64     `json:"entrySeq"`
	ActingUserID string    `json:"actingUserID"`
	ActorRole    string    `json:"actorRole"`
	Action       string    `json:"action"`
	OldValue     string    `json:"oldValue"`
	NewValue     string    `json:"newValue"`
	Remarks      string    `json:"remarks"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAuditEntryResponse converts a domain AuditEntry to its API shape.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntrySeq:     e.EntrySeq,
		ActingUserID: e.ActingUserID,
		ActorRole:    string(e.ActorRole),
		Action:       e.Action,
		OldValue:     string(e.OldValue),
		NewValue:     string(e.NewValue),
		Remarks:      e.Remarks,
		CreatedAt:    e.CreatedAt,
	}
}
