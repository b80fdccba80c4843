package domain

import "time"

// WithdrawalStatus is the state of a withdrawal request.
// Transitions are PENDING -> APPROVED or PENDING -> REJECTED, exactly once.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// WithdrawalConfig is the per-module withdrawal policy. Absent config means
// withdrawal is disallowed for that module (fail closed).
type WithdrawalConfig struct {
	ModuleType       RecordKind     `json:"moduleType"`
	AllowedStatuses  []RecordStatus `json:"allowedStatuses"` // statuses a record must be in to be withdrawable
	TimeLimitHours   int            `json:"timeLimitHours"`  // measured from the record's submission timestamp
	MaxAttempts      int            `json:"maxAttempts"`     // ceiling on requests referencing one record
	RequiresApproval bool           `json:"requiresApproval"`
	AuditFields
}

// StatusAllowed reports whether the given record status is in the allowed set.
func (c *WithdrawalConfig) StatusAllowed(status RecordStatus) bool {
	for _, s := range c.AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// WithdrawalRequest is one withdrawal attempt on exactly one fund record.
// The record is referenced by (RecordKind, RecordID) rather than four
// mutually-exclusive foreign keys.
type WithdrawalRequest struct {
	RequestID    string           `json:"requestID"` // Primary Key (UUID)
	RecordKind   RecordKind       `json:"recordKind"`
	RecordID     string           `json:"recordID"`
	RequesterID  string           `json:"requesterID"`
	Reason       string           `json:"reason"`
	Status       WithdrawalStatus `json:"status"`
	SourceStatus RecordStatus     `json:"sourceStatus"` // record status at request time, restored on reject
	AdminID      *string          `json:"adminID,omitempty"`
	AdminComment *string          `json:"adminComment,omitempty"`
	ReviewedAt   *time.Time       `json:"reviewedAt,omitempty"`
	AuditFields
}

// ReviewDecision is an admin's verdict on a pending withdrawal request.
type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "APPROVED"
	DecisionRejected ReviewDecision = "REJECTED"
)
