package models

import "time"

// WithdrawalStatus mirrors domain.WithdrawalStatus at the storage layer.
type WithdrawalStatus string

// WithdrawalConfig is the row shape of the withdrawal_configs table.
// allowed_statuses is a native text[] column, not a serialized string.
type WithdrawalConfig struct {
	ModuleType       RecordKind `db:"module_type"` // primary key
	AllowedStatuses  []string   `db:"allowed_statuses"`
	TimeLimitHours   int        `db:"time_limit_hours"`
	MaxAttempts      int        `db:"max_attempts"`
	RequiresApproval bool       `db:"requires_approval"`
	AuditFields
}

// WithdrawalRequest is the row shape of the withdrawal_requests table.
// A partial unique index on (record_kind, record_id) WHERE status = 'PENDING'
// backs the at-most-one-pending invariant.
type WithdrawalRequest struct {
	RequestID    string           `db:"request_id"`
	RecordKind   RecordKind       `db:"record_kind"`
	RecordID     string           `db:"record_id"`
	RequesterID  string           `db:"requester_id"`
	Reason       string           `db:"reason"`
	Status       WithdrawalStatus `db:"status"`
	SourceStatus RecordStatus     `db:"source_status"`
	AdminID      *string          `db:"admin_id"`
	AdminComment *string          `db:"admin_comment"`
	ReviewedAt   *time.Time       `db:"reviewed_at"`
	AuditFields
}
