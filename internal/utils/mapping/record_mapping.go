package mapping

import (
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/models"
)

// ToModelFundRecord converts a domain FundRecord to a model FundRecord.
func ToModelFundRecord(d domain.FundRecord) models.FundRecord {
	return models.FundRecord{
		RecordID:     d.RecordID,
		Kind:         models.RecordKind(d.Kind),
		OrgID:        d.FundNeed.OrgID,
		DepartmentID: d.FundNeed.DepartmentID,
		SubProjectID: d.FundNeed.SubProjectID,
		FundType:     d.FundNeed.FundType,
		Year:         d.Year,
		Month:        d.Month,
		Amount:       d.Amount,
		Status:       models.RecordStatus(d.Status),
		Remark:       d.Remark,
		SubmitterID:  d.SubmitterID,
		SubmittedAt:  d.SubmittedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFundRecord converts a model FundRecord to a domain FundRecord.
func ToDomainFundRecord(m models.FundRecord) domain.FundRecord {
	return domain.FundRecord{
		RecordID: m.RecordID,
		Kind:     domain.RecordKind(m.Kind),
		FundNeed: domain.FundNeed{
			OrgID:        m.OrgID,
			DepartmentID: m.DepartmentID,
			SubProjectID: m.SubProjectID,
			FundType:     m.FundType,
		},
		Year:        m.Year,
		Month:       m.Month,
		Amount:      m.Amount,
		Status:      domain.RecordStatus(m.Status),
		Remark:      m.Remark,
		SubmitterID: m.SubmitterID,
		SubmittedAt: m.SubmittedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFundRecordSlice converts a slice of model FundRecords to domain FundRecords.
func ToDomainFundRecordSlice(ms []models.FundRecord) []domain.FundRecord {
	ds := make([]domain.FundRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFundRecord(m)
	}
	return ds
}
