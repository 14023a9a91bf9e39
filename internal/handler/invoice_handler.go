package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/export"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	uploadService  service.UploadService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, uploadService service.UploadService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, uploadService: uploadService}
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices with optional archived/status filters and pagination
// @Tags invoices
// @Produce json
// @Param archived query bool false "Filter by archived flag"
// @Param status query string false "Filter by status"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit (default 50)"
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := port.InvoiceFilter{
		Status: c.Query("status"),
		Offset: atoiDefault(c.Query("offset"), 0),
		Limit:  atoiDefault(c.Query("limit"), 50),
	}
	if v := c.Query("archived"); v != "" {
		archived := v == "true"
		filter.Archived = &archived
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// Upload handles POST /api/v1/invoices/upload
// @Summary Upload an invoice file
// @Description Upload any file; fields are extracted and an invoice record is always created
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice file"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse "Missing file"
// @Failure 413 {object} APIResponse "File too large"
// @Security BearerAuth
// @Router /invoices/upload [post]
func (h *InvoiceHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	inv, err := h.uploadService.Upload(c.Request.Context(), service.UploadInvoiceInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// MarkPaid handles POST /api/v1/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Archive handles POST /api/v1/invoices/:id/archive
func (h *InvoiceHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Archive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Unarchive handles POST /api/v1/invoices/:id/unarchive
func (h *InvoiceHandler) Unarchive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Unarchive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Export handles GET /api/v1/invoices/export?format=csv|xlsx
// @Summary Export all invoices
// @Tags invoices
// @Produce text/csv
// @Param format query string false "csv (default) or xlsx"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	invoices, err := h.invoiceService.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		data, err := export.WriteXLSX(invoices)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="invoices.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	case "csv":
		c.Header("Content-Disposition", `attachment; filename="invoices.csv"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)

		if _, err := c.Writer.Write(export.BOM); err != nil {
			return
		}
		w := export.NewWriter(c.Writer)
		if err := w.WriteHeader(); err != nil {
			return
		}
		if err := w.WriteInvoices(invoices); err != nil {
			return
		}
		w.Flush()

	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT",
			fmt.Sprintf("unsupported export format %q; allowed: csv, xlsx", c.Query("format")))
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
