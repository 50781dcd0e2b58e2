package handler

import (
	"math"
	"net/http"
	"strconv"

	"edupay-service/internal/adapter/http/dto"
	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"
	"edupay-service/pkg/apperror"
	"edupay-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// OpsHandler handles operator login and dashboard endpoints.
type OpsHandler struct {
	opsAuthSvc   ports.OpsAuthService
	reportingSvc ports.ReportingService
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(opsAuthSvc ports.OpsAuthService, reportingSvc ports.ReportingService) *OpsHandler {
	return &OpsHandler{opsAuthSvc: opsAuthSvc, reportingSvc: reportingSvc}
}

// Login handles POST /api/v1/ops/login.
func (h *OpsHandler) Login(c *gin.Context) {
	var req dto.OpsLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	token, expiry, err := h.opsAuthSvc.Login(c.Request.Context(), req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.OpsLoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// GetStats handles GET /api/v1/ops/stats.
func (h *OpsHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StatsResponse{
		TotalTransactions: stats.TotalTransactions,
		Pending:           stats.Pending,
		Approved:          stats.Approved,
		Rejected:          stats.Rejected,
		Errored:           stats.Errored,
		ApprovedRevenue:   stats.ApprovedRevenue,
	})
}

// ListTransactions handles GET /api/v1/ops/transactions.
func (h *OpsHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.TransactionListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if s := c.Query("state"); s != "" {
		state := domain.PaymentState(s)
		params.State = &state
	}
	if cur := c.Query("currency"); cur != "" {
		params.Currency = &cur
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	txns, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.CheckoutResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.TransactionListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// HealthCheck handles GET /health. Deep check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
