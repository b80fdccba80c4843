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

// withdrawalHandler handles the withdrawal workflow routes: filer-side
// requests, the admin approval console, and the policy registry.
type withdrawalHandler struct {
	engine        portssvc.WithdrawalEngineSvc
	configService portssvc.WithdrawalConfigSvc
	userService   portssvc.UserSvcFacade
}

// newWithdrawalHandler creates a new withdrawalHandler.
func newWithdrawalHandler(engine portssvc.WithdrawalEngineSvc, cs portssvc.WithdrawalConfigSvc, us portssvc.UserSvcFacade) *withdrawalHandler {
	return &withdrawalHandler{engine: engine, configService: cs, userService: us}
}

// RegisterWithdrawalRoutes registers the withdrawal and policy routes.
func RegisterWithdrawalRoutes(rg *gin.RouterGroup, engine portssvc.WithdrawalEngineSvc, configService portssvc.WithdrawalConfigSvc, userService portssvc.UserSvcFacade) {
	h := newWithdrawalHandler(engine, configService, userService)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", h.requestWithdrawal)
		withdrawals.GET("", h.listRequests)
		withdrawals.POST("/:requestID/review", h.reviewWithdrawal)
	}

	configs := rg.Group("/withdrawal-configs")
	{
		configs.GET("", h.listConfigs)
		configs.GET("/:moduleType", h.getConfig)
		configs.PUT("/:moduleType", h.upsertConfig)
	}
}

// requestWithdrawal godoc
// @Summary Request withdrawal of a record
// @Description Runs the policy checks and creates a withdrawal request. Depending on policy the request is finalized immediately or left pending for admin review.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body dto.RequestWithdrawalRequest true "Withdrawal request"
// @Success 201 {object} dto.WithdrawalRequestResponse
// @Failure 400 {object} WorkflowErrorResponse
// @Failure 404 {object} WorkflowErrorResponse
// @Failure 409 {object} WorkflowErrorResponse
// @Failure 422 {object} WorkflowErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) requestWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RequestWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	kind, err := domain.ParseRecordKind(req.RecordType)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	request, err := h.engine.RequestWithdrawal(c.Request.Context(), kind, req.RecordID, userID, req.Reason)
	if err != nil {
		respondWorkflowError(c, err, "Failed to request withdrawal")
		return
	}

	logger.Info("Withdrawal requested", slog.String("request_id", request.RequestID))
	c.JSON(http.StatusCreated, dto.ToWithdrawalRequestResponse(request))
}

// reviewWithdrawal godoc
// @Summary Review a pending withdrawal request
// @Description Applies an admin decision to a pending request, exactly once. Retries of an already-decided request return a conflict.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param requestID path string true "Withdrawal request ID"
// @Param review body dto.ReviewWithdrawalRequest true "Decision"
// @Success 200 {object} dto.WithdrawalRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} WorkflowErrorResponse
// @Failure 404 {object} WorkflowErrorResponse
// @Failure 409 {object} WorkflowErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals/{requestID}/review [post]
func (h *withdrawalHandler) reviewWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReviewWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.engine.ReviewWithdrawal(c.Request.Context(), c.Param("requestID"), adminID, req.ToDecision(), req.Comment)
	if err != nil {
		respondWorkflowError(c, err, "Failed to review withdrawal request")
		return
	}

	logger.Info("Withdrawal reviewed",
		slog.String("request_id", request.RequestID),
		slog.String("decision", string(request.Status)))
	c.JSON(http.StatusOK, dto.ToWithdrawalRequestResponse(request))
}

// listRequests godoc
// @Summary List withdrawal requests
// @Description Retrieves a filtered, paginated listing for the approval console.
// @Tags withdrawals
// @Produce json
// @Param status query string false "Request status filter" Enums(PENDING, APPROVED, REJECTED)
// @Param moduleType query string false "Module type filter" Enums(predict, actual_user, actual_fin, audit)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListWithdrawalRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *withdrawalHandler) listRequests(c *gin.Context) {
	var params dto.ListWithdrawalRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.engine.ListRequests(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list withdrawal requests")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getConfig godoc
// @Summary Get a module's withdrawal policy
// @Tags withdrawal-configs
// @Produce json
// @Param moduleType path string true "Module type" Enums(predict, actual_user, actual_fin, audit)
// @Success 200 {object} dto.WithdrawalConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawal-configs/{moduleType} [get]
func (h *withdrawalHandler) getConfig(c *gin.Context) {
	kind, err := domain.ParseRecordKind(c.Param("moduleType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	config, err := h.configService.GetConfig(c.Request.Context(), kind)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve withdrawal config")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalConfigResponse(config))
}

// listConfigs godoc
// @Summary List all withdrawal policies
// @Tags withdrawal-configs
// @Produce json
// @Success 200 {array} dto.WithdrawalConfigResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawal-configs [get]
func (h *withdrawalHandler) listConfigs(c *gin.Context) {
	configs, err := h.configService.ListConfigs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list withdrawal configs")
		return
	}

	resp := make([]dto.WithdrawalConfigResponse, len(configs))
	for i := range configs {
		resp[i] = dto.ToWithdrawalConfigResponse(&configs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// upsertConfig godoc
// @Summary Create or overwrite a module's withdrawal policy
// @Description Admin only. The upsert is idempotent per module type.
// @Tags withdrawal-configs
// @Accept json
// @Produce json
// @Param moduleType path string true "Module type" Enums(predict, actual_user, actual_fin, audit)
// @Param config body dto.UpsertWithdrawalConfigRequest true "Policy"
// @Success 200 {object} dto.WithdrawalConfigResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawal-configs/{moduleType} [put]
func (h *withdrawalHandler) upsertConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind, err := domain.ParseRecordKind(c.Param("moduleType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.UpsertWithdrawalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// Policy edits require the admin capability.
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil || !user.Role.HasAdminCapability() {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	config, err := h.configService.UpsertConfig(c.Request.Context(), kind, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to upsert withdrawal config")
		return
	}

	logger.Info("Withdrawal config upserted", slog.String("module_type", kind.ModuleType()))
	c.JSON(http.StatusOK, dto.ToWithdrawalConfigResponse(config))
}
