package domain

import "time"

// Audit trail action names.
const (
	ActionWithdrawn         = "withdrawn"
	ActionWithdrawalPending = "withdrawal_pending"
	ActionWithdrawalDenied  = "withdrawal_denied"
)

// AuditEntry is an immutable log row tied to one fund record. Entries are
// append-only; ordering is by CreatedAt with EntrySeq breaking ties.
type AuditEntry struct {
	EntrySeq     int64      `json:"entrySeq"` // insertion sequence, assigned by storage
	RecordKind   RecordKind `json:"recordKind"`
	RecordID     string     `json:"recordID"`
	ActingUserID string     `json:"actingUserID"`
	ActorRole    UserRole   `json:"actorRole"`
	Action       string     `json:"action"`
	OldValue     []byte     `json:"oldValue"` // serialized record snapshot before the action
	NewValue     []byte     `json:"newValue"` // serialized record snapshot after the action
	Remarks      string     `json:"remarks"`
	CreatedAt    time.Time  `json:"createdAt"`
}
