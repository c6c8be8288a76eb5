package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/sitekhata/backend/internal/application/report"
	"github.com/sitekhata/backend/internal/domain/report"
)

// ReportHandler handles read-only reporting endpoints. All figures are
// derived from ledger entries, payments and allocations at query time.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// parseReportFilter builds an expense report filter from query parameters.
// Dates use the 2006-01-02 layout.
func parseReportFilter(c *gin.Context) (report.ExpenseReportFilter, error) {
	var filter report.ExpenseReportFilter

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &t
	}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		id, err := uuid.Parse(vendorID)
		if err != nil {
			return filter, err
		}
		filter.VendorID = &id
	}
	if itemID := c.Query("item_id"); itemID != "" {
		id, err := uuid.Parse(itemID)
		if err != nil {
			return filter, err
		}
		filter.ItemID = &id
	}

	return filter, nil
}

// GetFinancialSummary returns the project-level totals: expenses, payments,
// due and advance.
// GET /api/v1/reports/summary
func (h *ReportHandler) GetFinancialSummary(c *gin.Context) {
	summary, err := h.reportService.GetFinancialSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetVendorLedger returns per-vendor expense, payment and balance rows.
// GET /api/v1/reports/vendor-ledger
func (h *ReportHandler) GetVendorLedger(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	rows, err := h.reportService.GetVendorLedger(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetVendorLedgerRow returns the ledger position of a single vendor.
// GET /api/v1/reports/vendor-ledger/:id
func (h *ReportHandler) GetVendorLedgerRow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	row, err := h.reportService.GetVendorLedgerRow(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, row)
}

// GetDateWiseExpenses returns daily expense totals in the date range.
// GET /api/v1/reports/date-wise
func (h *ReportHandler) GetDateWiseExpenses(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	rows, err := h.reportService.GetDateWiseExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetItemWiseExpenses returns per-item quantity and amount totals.
// GET /api/v1/reports/item-wise
func (h *ReportHandler) GetItemWiseExpenses(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	rows, err := h.reportService.GetItemWiseExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetMonthlyExpenses returns month-bucketed expense totals.
// GET /api/v1/reports/monthly
func (h *ReportHandler) GetMonthlyExpenses(c *gin.Context) {
	filter, err := parseReportFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	rows, err := h.reportService.GetMonthlyExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetDashboard returns the combined dashboard payload: summary, vendor
// ledger, recent daily expenses, top items and payment mode breakdown.
// GET /api/v1/reports/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
