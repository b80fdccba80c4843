package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

// recordHandler handles HTTP requests for fund records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

// newRecordHandler creates a new recordHandler.
func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs}
}

// registerRecordRoutes registers all record-related routes.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := newRecordHandler(recordService)

	records := rg.Group("/records")
	{
		records.POST("", h.saveDraft)
		records.GET("", h.listRecords)
		records.GET("/:recordID", h.getRecord)
		records.PUT("/:recordID", h.updateDraft)
		records.POST("/:recordID/submit", h.submitRecord)
		records.GET("/:recordID/audit-trail", h.listAuditTrail)
	}
}

// recordKindFromQuery parses the mandatory recordType query parameter. Routes
// that address a record by ID need it because record IDs are only unique
// within a kind's table.
func recordKindFromQuery(c *gin.Context) (domain.RecordKind, bool) {
	kind, err := domain.ParseRecordKind(c.Query("recordType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "recordType query parameter must be one of predict, actual_user, actual_fin, audit"})
		return "", false
	}
	return kind, true
}

// saveDraft godoc
// @Summary Create or re-open a draft record
// @Description Creates the draft record for a fund-need/year/month triple, or updates it when a draft or withdrawn record already exists.
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.SaveDraftRequest true "Draft record details"
// @Success 201 {object} dto.FundRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [post]
func (h *recordHandler) saveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.recordService.SaveDraft(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to save draft")
		return
	}

	logger.Info("Draft saved", slog.String("record_id", record.RecordID))
	c.JSON(http.StatusCreated, dto.ToFundRecordResponse(record))
}

// updateDraft godoc
// @Summary Update a draft record
// @Description Updates the editable fields of a draft or withdrawn record; a withdrawn record reverts to draft.
// @Tags records
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param recordType query string true "Record type" Enums(predict, actual_user, actual_fin, audit)
// @Param record body dto.UpdateDraftRequest true "Fields to update"
// @Success 200 {object} dto.FundRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [put]
func (h *recordHandler) updateDraft(c *gin.Context) {
	kind, ok := recordKindFromQuery(c)
	if !ok {
		return
	}

	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.recordService.UpdateDraft(c.Request.Context(), kind, c.Param("recordID"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRecordResponse(record))
}

// submitRecord godoc
// @Summary Submit a record
// @Description Moves a draft to SUBMITTED and stamps the submission time.
// @Tags records
// @Produce json
// @Param recordID path string true "Record ID"
// @Param recordType query string true "Record type" Enums(predict, actual_user, actual_fin, audit)
// @Success 200 {object} dto.FundRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID}/submit [post]
func (h *recordHandler) submitRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, ok := recordKindFromQuery(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.recordService.Submit(c.Request.Context(), kind, c.Param("recordID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to submit record")
		return
	}

	logger.Info("Record submitted", slog.String("record_id", record.RecordID))
	c.JSON(http.StatusOK, dto.ToFundRecordResponse(record))
}

// getRecord godoc
// @Summary Get a record
// @Description Retrieves one fund record by type and ID.
// @Tags records
// @Produce json
// @Param recordID path string true "Record ID"
// @Param recordType query string true "Record type" Enums(predict, actual_user, actual_fin, audit)
// @Success 200 {object} dto.FundRecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	kind, ok := recordKindFromQuery(c)
	if !ok {
		return
	}

	record, err := h.recordService.GetRecord(c.Request.Context(), kind, c.Param("recordID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve record")
		return
	}
	c.JSON(http.StatusOK, dto.ToFundRecordResponse(record))
}

// listRecords godoc
// @Summary List records
// @Description Retrieves a filtered, paginated record listing for one record type.
// @Tags records
// @Produce json
// @Param recordType query string true "Record type" Enums(predict, actual_user, actual_fin, audit)
// @Param status query string false "Record status filter"
// @Param year query int false "Year filter"
// @Param month query int false "Month filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.recordService.ListRecords(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listAuditTrail godoc
// @Summary Get a record's audit trail
// @Description Retrieves the append-only audit trail of one record, oldest first.
// @Tags records
// @Produce json
// @Param recordID path string true "Record ID"
// @Param recordType query string true "Record type" Enums(predict, actual_user, actual_fin, audit)
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID}/audit-trail [get]
func (h *recordHandler) listAuditTrail(c *gin.Context) {
	kind, ok := recordKindFromQuery(c)
	if !ok {
		return
	}

	entries, err := h.recordService.ListAuditTrail(c.Request.Context(), kind, c.Param("recordID"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve audit trail")
		return
	}

	resp := make([]dto.AuditEntryResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToAuditEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}
