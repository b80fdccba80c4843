package mapping

import (
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry.
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntrySeq:     d.EntrySeq,
		RecordKind:   models.RecordKind(d.RecordKind),
		RecordID:     d.RecordID,
		ActingUserID: d.ActingUserID,
		ActorRole:    string(d.ActorRole),
		Action:       d.Action,
		OldValue:     d.OldValue,
		NewValue:     d.NewValue,
		Remarks:      d.Remarks,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry.
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntrySeq:     m.EntrySeq,
		RecordKind:   domain.RecordKind(m.RecordKind),
		RecordID:     m.RecordID,
		ActingUserID: m.ActingUserID,
		ActorRole:    domain.UserRole(m.ActorRole),
		Action:       m.Action,
		OldValue:     m.OldValue,
		NewValue:     m.NewValue,
		Remarks:      m.Remarks,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model entries to domain entries.
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
