package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
)

// CashflowHandler handles cashflow reporting endpoints.
type CashflowHandler struct {
	cashflowService service.CashflowService
}

// NewCashflowHandler creates a new CashflowHandler.
func NewCashflowHandler(cashflowService service.CashflowService) *CashflowHandler {
	return &CashflowHandler{cashflowService: cashflowService}
}

// Summary handles GET /api/v1/cashflow
// @Summary Cashflow summary
// @Description Aggregate outstanding/paid totals, overdue counts, and weekly buckets
// @Tags cashflow
// @Produce json
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /cashflow [get]
func (h *CashflowHandler) Summary(c *gin.Context) {
	summary, err := h.cashflowService.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// Narrative handles GET /api/v1/cashflow/narrative
func (h *CashflowHandler) Narrative(c *gin.Context) {
	report, err := h.cashflowService.Report(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

type remindInput struct {
	Email string `json:"email" binding:"required,email"`
}

// Remind handles POST /api/v1/cashflow/remind
func (h *CashflowHandler) Remind(c *gin.Context) {
	var input remindInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	count, err := h.cashflowService.SendDueReminder(c.Request.Context(), input.Email)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoices_due": count, "sent": count > 0})
}
