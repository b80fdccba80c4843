package apperrors

import "fmt"

// WorkflowErrorType tags the specific reason a withdrawal operation was refused.
// The tag is part of the API contract: the UI explains refusals to the filer
// from the tag and details, so refusals must never collapse into a generic error.
type WorkflowErrorType string

const (
	TypeRecordNotFound        WorkflowErrorType = "RecordNotFound"
	TypeConfigMissing         WorkflowErrorType = "ConfigMissing"
	TypeStatusNotWithdrawable WorkflowErrorType = "StatusNotWithdrawable"
	TypeTimeLimitExceeded     WorkflowErrorType = "TimeLimitExceeded"
	TypeMaxAttemptsExceeded   WorkflowErrorType = "MaxAttemptsExceeded"
	TypeAlreadyPending        WorkflowErrorType = "AlreadyPending"
	TypeInvalidReason         WorkflowErrorType = "InvalidReason"
	TypeRequestNotFound       WorkflowErrorType = "RequestNotFound"
	TypeAlreadyProcessed      WorkflowErrorType = "AlreadyProcessed"
	TypeForbidden             WorkflowErrorType = "Forbidden"
)

// WorkflowError is a typed, detail-carrying validation or policy error from
// the withdrawal workflow engine.
type WorkflowError struct {
	Type    WorkflowErrorType
	Message string
	Details map[string]any
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap maps workflow error types onto the package sentinels so callers can
// keep using errors.Is for coarse handling.
func (e *WorkflowError) Unwrap() error {
	switch e.Type {
	case TypeRecordNotFound, TypeConfigMissing, TypeRequestNotFound:
		return ErrNotFound
	case TypeForbidden:
		return ErrForbidden
	default:
		return ErrValidation
	}
}

// NewWorkflowError creates a WorkflowError with optional detail fields.
func NewWorkflowError(t WorkflowErrorType, message string, details map[string]any) *WorkflowError {
	return &WorkflowError{Type: t, Message: message, Details: details}
}
