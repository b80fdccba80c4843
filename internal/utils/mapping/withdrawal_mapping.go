package mapping

import (
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/models"
)

// ToModelWithdrawalConfig converts a domain WithdrawalConfig to a model WithdrawalConfig.
func ToModelWithdrawalConfig(d domain.WithdrawalConfig) models.WithdrawalConfig {
	allowed := make([]string, len(d.AllowedStatuses))
	for i, s := range d.AllowedStatuses {
		allowed[i] = string(s)
	}
	return models.WithdrawalConfig{
		ModuleType:       models.RecordKind(d.ModuleType),
		AllowedStatuses:  allowed,
		TimeLimitHours:   d.TimeLimitHours,
		MaxAttempts:      d.MaxAttempts,
		RequiresApproval: d.RequiresApproval,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawalConfig converts a model WithdrawalConfig to a domain WithdrawalConfig.
func ToDomainWithdrawalConfig(m models.WithdrawalConfig) domain.WithdrawalConfig {
	allowed := make([]domain.RecordStatus, len(m.AllowedStatuses))
	for i, s := range m.AllowedStatuses {
		allowed[i] = domain.RecordStatus(s)
	}
	return domain.WithdrawalConfig{
		ModuleType:       domain.RecordKind(m.ModuleType),
		AllowedStatuses:  allowed,
		TimeLimitHours:   m.TimeLimitHours,
		MaxAttempts:      m.MaxAttempts,
		RequiresApproval: m.RequiresApproval,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWithdrawalRequest converts a domain WithdrawalRequest to a model WithdrawalRequest.
func ToModelWithdrawalRequest(d domain.WithdrawalRequest) models.WithdrawalRequest {
	return models.WithdrawalRequest{
		RequestID:    d.RequestID,
		RecordKind:   models.RecordKind(d.RecordKind),
		RecordID:     d.RecordID,
		RequesterID:  d.RequesterID,
		Reason:       d.Reason,
		Status:       models.WithdrawalStatus(d.Status),
		SourceStatus: models.RecordStatus(d.SourceStatus),
		AdminID:      d.AdminID,
		AdminComment: d.AdminComment,
		ReviewedAt:   d.ReviewedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawalRequest converts a model WithdrawalRequest to a domain WithdrawalRequest.
func ToDomainWithdrawalRequest(m models.WithdrawalRequest) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		RequestID:    m.RequestID,
		RecordKind:   domain.RecordKind(m.RecordKind),
		RecordID:     m.RecordID,
		RequesterID:  m.RequesterID,
		Reason:       m.Reason,
		Status:       domain.WithdrawalStatus(m.Status),
		SourceStatus: domain.RecordStatus(m.SourceStatus),
		AdminID:      m.AdminID,
		AdminComment: m.AdminComment,
		ReviewedAt:   m.ReviewedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWithdrawalRequestSlice converts a slice of model requests to domain requests.
func ToDomainWithdrawalRequestSlice(ms []models.WithdrawalRequest) []domain.WithdrawalRequest {
	ds := make([]domain.WithdrawalRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWithdrawalRequest(m)
	}
	return ds
}
