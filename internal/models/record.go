package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind mirrors domain.RecordKind at the storage layer.
type RecordKind string

// RecordStatus mirrors domain.RecordStatus at the storage layer.
type RecordStatus string

// FundRecord is the row shape of the fund_records table. All four record
// kinds share the table; the kind column discriminates.
type FundRecord struct {
	RecordID     string           `db:"record_id"`
	Kind         RecordKind       `db:"kind"`
	OrgID        string           `db:"org_id"`
	DepartmentID string           `db:"department_id"`
	SubProjectID string           `db:"sub_project_id"`
	FundType     string           `db:"fund_type"`
	Year         int              `db:"year"`
	Month        int              `db:"month"`
	Amount       *decimal.Decimal `db:"amount"` // NULL means not yet filled
	Status       RecordStatus     `db:"status"`
	Remark       string           `db:"remark"`
	SubmitterID  string           `db:"submitter_id"`
	SubmittedAt  *time.Time       `db:"submitted_at"`
	AuditFields
}
