package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

// WorkflowErrorResponse is the typed refusal shape returned by the withdrawal
// routes. The type tag and details let the UI explain the refusal.
type WorkflowErrorResponse struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// respondWorkflowError writes a WorkflowError as a typed JSON refusal, falling
// back to the generic mapping for anything else.
func respondWorkflowError(c *gin.Context, err error, fallbackMsg string) {
	var wfErr *apperrors.WorkflowError
	if !errors.As(err, &wfErr) {
		respondServiceError(c, err, fallbackMsg)
		return
	}

	status := http.StatusUnprocessableEntity
	switch wfErr.Type {
	case apperrors.TypeRecordNotFound, apperrors.TypeConfigMissing, apperrors.TypeRequestNotFound:
		status = http.StatusNotFound
	case apperrors.TypeForbidden:
		status = http.StatusForbidden
	case apperrors.TypeAlreadyPending, apperrors.TypeAlreadyProcessed:
		status = http.StatusConflict
	case apperrors.TypeInvalidReason:
		status = http.StatusBadRequest
	}

	c.JSON(status, WorkflowErrorResponse{
		Type:    string(wfErr.Type),
		Message: wfErr.Message,
		Details: wfErr.Details,
	})
}

// respondServiceError maps service-layer sentinel errors onto HTTP statuses.
// Unknown errors are logged and returned as a generic 500 so internals never
// leak to clients.
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallbackMsg})
	}
}
