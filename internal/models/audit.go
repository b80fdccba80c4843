package models

import "time"

// AuditEntry is the row shape of the append-only audit_entries table.
// entry_seq is a bigserial used to break created_at ordering ties.
type AuditEntry struct {
	EntrySeq     int64      `db:"entry_seq"`
	RecordKind   RecordKind `db:"record_kind"`
	RecordID     string     `db:"record_id"`
	ActingUserID string     `db:"acting_user_id"`
	ActorRole    string     `db:"actor_role"`
	Action       string     `db:"action"`
	OldValue     []byte     `db:"old_value"`
	NewValue     []byte     `db:"new_value"`
	Remarks      string     `db:"remarks"`
	CreatedAt    time.Time  `db:"created_at"`
}
