package dto

import (
	"time"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
)

// RequestWithdrawalRequest is the payload for requesting a withdrawal of a record.
type RequestWithdrawalRequest struct {
	RecordID   string `json:"recordId" binding:"required"`
	RecordType string `json:"recordType" binding:"required,oneof=predict actual_user actual_fin audit"`
	Reason     string `json:"reason" binding:"required"`
}

// ReviewWithdrawalRequest is the payload for an admin decision on a pending request.
type ReviewWithdrawalRequest struct {
	Decision string  `json:"decision" binding:"required,oneof=approved rejected"`
	Comment  *string `json:"comment,omitempty"`
}

// Decision converts the wire decision string to the domain type.
func (r ReviewWithdrawalRequest) ToDecision() domain.ReviewDecision {
	if r.Decision == "approved" {
		return domain.DecisionApproved
	}
	return domain.DecisionRejected
}

// WithdrawalRequestResponse is the API shape of a withdrawal request.
type WithdrawalRequestResponse struct {
	RequestID    string     `json:"requestID"`
	RecordType   string     `json:"recordType"`
	RecordID     string     `json:"recordID"`
	RequesterID  string     `json:"requesterID"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminID      *string    `json:"adminID,omitempty"`
	AdminComment *string    `json:"adminComment,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ToWithdrawalRequestResponse converts a domain WithdrawalRequest to its API shape.
func ToWithdrawalRequestResponse(r *domain.WithdrawalRequest) WithdrawalRequestResponse {
	return WithdrawalRequestResponse{
		RequestID:    r.RequestID,
		RecordType:   r.RecordKind.ModuleType(),
		RecordID:     r.RecordID,
		RequesterID:  r.RequesterID,
		Reason:       r.Reason,
		Status:       string(r.Status),
		AdminID:      r.AdminID,
		AdminComment: r.AdminComment,
		ReviewedAt:   r.ReviewedAt,
		CreatedAt:    r.CreatedAt,
	}
}

// ListWithdrawalRequestsParams are the approval console list filters.
type ListWithdrawalRequestsParams struct {
	Status     *string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	ModuleType *string `form:"moduleType" binding:"omitempty,oneof=predict actual_user actual_fin audit"`
	Page       int     `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int     `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// ListWithdrawalRequestsResponse is a page of withdrawal requests.
type ListWithdrawalRequestsResponse struct {
	Requests []WithdrawalRequestResponse `json:"requests"`
	Total    int                         `json:"total"`
	Page     int                         `json:"page"`
	PageSize int                         `json:"pageSize"`
}

// UpsertWithdrawalConfigRequest is the payload for creating/overwriting a module policy.
// RequiresApproval is a pointer so that an explicit false is distinguishable from absent.
type UpsertWithdrawalConfigRequest struct {
	AllowedStatuses  []string `json:"allowedStatuses" binding:"required,min=1"`
	TimeLimitHours   int      `json:"timeLimitHours" binding:"required,gt=0"`
	MaxAttempts      int      `json:"maxAttempts" binding:"required,gt=0"`
	RequiresApproval *bool    `json:"requiresApproval" binding:"required"`
}

// WithdrawalConfigResponse is the API shape of a module policy.
type WithdrawalConfigResponse struct {
	ModuleType       string   `json:"moduleType"`
	AllowedStatuses  []string `json:"allowedStatuses"`
	TimeLimitHours   int      `json:"timeLimitHours"`
	MaxAttempts      int      `json:"maxAttempts"`
	RequiresApproval bool     `json:"requiresApproval"`
}

// ToWithdrawalConfigResponse converts a domain WithdrawalConfig to its API shape.
func ToWithdrawalConfigResponse(c *domain.WithdrawalConfig) WithdrawalConfigResponse {
	allowed := make([]string, len(c.AllowedStatuses))
	for i, s := range c.AllowedStatuses {
		allowed[i] = string(s)
	}
	return WithdrawalConfigResponse{
		ModuleType:       c.ModuleType.ModuleType(),
		AllowedStatuses:  allowed,
		TimeLimitHours:   c.TimeLimitHours,
		MaxAttempts:      c.MaxAttempts,
		RequiresApproval: c.RequiresApproval,
	}
}
