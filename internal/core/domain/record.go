package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind identifies which of the four reporting modules a fund record belongs to.
type RecordKind string

const (
	KindPredict       RecordKind = "PREDICT"
	KindActualUser    RecordKind = "ACTUAL_USER"
	KindActualFinance RecordKind = "ACTUAL_FIN"
	KindAudit         RecordKind = "AUDIT"
)

// kindWireNames maps the canonical kinds to the strings used on the HTTP surface
// and in the withdrawal_configs table (module_type column).
var kindWireNames = map[RecordKind]string{
	KindPredict:       "predict",
	KindActualUser:    "actual_user",
	KindActualFinance: "actual_fin",
	KindAudit:         "audit",
}

// ModuleType returns the wire/config name for the kind.
func (k RecordKind) ModuleType() string {
	return kindWireNames[k]
}

// ParseRecordKind converts a wire-format module type string into a RecordKind.
func ParseRecordKind(moduleType string) (RecordKind, error) {
	for kind, name := range kindWireNames {
		if name == moduleType {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown module type %q", moduleType)
}

// RecordStatus is the lifecycle status of a fund record. One canonical
// uppercase domain is used everywhere; conversion happens at boundaries only.
type RecordStatus string

const (
	StatusDraft             RecordStatus = "DRAFT"
	StatusSubmitted         RecordStatus = "SUBMITTED"
	StatusPendingWithdrawal RecordStatus = "PENDING_WITHDRAWAL"
	StatusApproved          RecordStatus = "APPROVED"
	StatusRejected          RecordStatus = "REJECTED"
	StatusWithdrawn         RecordStatus = "WITHDRAWN"
)

// ParseRecordStatus validates and canonicalizes a status string.
func ParseRecordStatus(s string) (RecordStatus, error) {
	switch RecordStatus(s) {
	case StatusDraft, StatusSubmitted, StatusPendingWithdrawal, StatusApproved, StatusRejected, StatusWithdrawn:
		return RecordStatus(s), nil
	}
	return "", fmt.Errorf("unknown record status %q", s)
}

// FundNeed is the dimension a monthly record reports against.
type FundNeed struct {
	OrgID        string `json:"orgID"`
	DepartmentID string `json:"departmentID"`
	SubProjectID string `json:"subProjectID"`
	FundType     string `json:"fundType"`
}

// FundRecord represents one month's reported figure for one fund-need dimension.
// A nil Amount means the figure has not been filled in yet.
type FundRecord struct {
	RecordID    string           `json:"recordID"` // Primary Key (UUID)
	Kind        RecordKind       `json:"kind"`
	FundNeed    FundNeed         `json:"fundNeed"`
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Status      RecordStatus     `json:"status"`
	Remark      string           `json:"remark"`
	SubmitterID string           `json:"submitterID"`
	SubmittedAt *time.Time       `json:"submittedAt,omitempty"`
	AuditFields
}

// Editable reports whether the filer may still change the record's figures.
func (r *FundRecord) Editable() bool {
	return r.Status == StatusDraft || r.Status == StatusWithdrawn
}
