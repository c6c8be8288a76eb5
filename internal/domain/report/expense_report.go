package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialSummary is the project-level financial read model. TotalPaid is
// the sum of allocated amounts, not raw payment amounts, so money handed to
// a vendor ahead of any recorded expense shows up as advance instead of
// inflating the paid figure.
type FinancialSummary struct {
	TotalProjectCost decimal.Decimal `json:"total_project_cost"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalDue         decimal.Decimal `json:"total_due"`
	TotalAdvance     decimal.Decimal `json:"total_advance"`
	EntryCount       int64           `json:"entry_count"`
	PaymentCount     int64           `json:"payment_count"`
	VendorCount      int64           `json:"vendor_count"`
}

// VendorLedgerRow is one vendor's position: what work was billed against
// them, what has been paid out, and how much of that outflow actually
// settled their entries.
type VendorLedgerRow struct {
	VendorID       uuid.UUID       `json:"vendor_id"`
	VendorName     string          `json:"vendor_name"`
	TotalBilled    decimal.Decimal `json:"total_billed"`
	TotalPaidOut   decimal.Decimal `json:"total_paid_out"`
	TotalAllocated decimal.Decimal `json:"total_allocated"`
	DueAmount      decimal.Decimal `json:"due_amount"`     // TotalBilled - TotalAllocated
	AdvanceAmount  decimal.Decimal `json:"advance_amount"` // TotalPaidOut - TotalAllocated
	EntryCount     int64           `json:"entry_count"`
	PaymentCount   int64           `json:"payment_count"`
}

// DateWiseExpenseRow aggregates entry cost per calendar day
type DateWiseExpenseRow struct {
	Date        time.Time       `json:"date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	EntryCount  int64           `json:"entry_count"`
}

// ItemWiseRow aggregates entry cost and quantity per catalog item
type ItemWiseRow struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemName      string          `json:"item_name"`
	ItemType      string          `json:"item_type"`
	Unit          string          `json:"unit"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	EntryCount    int64           `json:"entry_count"`
}

// MonthlyExpenseRow aggregates entry cost per calendar month
type MonthlyExpenseRow struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	EntryCount  int64           `json:"entry_count"`
}

// PaymentModeRow aggregates payment outflow per payment mode
type PaymentModeRow struct {
	Mode         string          `json:"mode"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaymentCount int64           `json:"payment_count"`
}

// ExpenseReportFilter defines filtering options for expense reports
type ExpenseReportFilter struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	VendorID  *uuid.UUID `json:"vendor_id,omitempty"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	TopN      int        `json:"top_n,omitempty"`
}

// ReportRepository defines the interface for read-path aggregate queries.
// Rows come straight from SQL aggregation; no report state is persisted.
type ReportRepository interface {
	// GetFinancialSummary returns the project-level summary
	GetFinancialSummary(ctx context.Context) (*FinancialSummary, error)

	// GetVendorLedger returns one row per vendor with billed/paid/due/advance
	GetVendorLedger(ctx context.Context, filter ExpenseReportFilter) ([]VendorLedgerRow, error)

	// GetVendorLedgerRow returns the ledger row for a single vendor
	GetVendorLedgerRow(ctx context.Context, vendorID uuid.UUID) (*VendorLedgerRow, error)

	// GetDateWiseExpenses returns per-day expense totals
	GetDateWiseExpenses(ctx context.Context, filter ExpenseReportFilter) ([]DateWiseExpenseRow, error)

	// GetItemWiseExpenses returns per-item cost and quantity totals
	GetItemWiseExpenses(ctx context.Context, filter ExpenseReportFilter) ([]ItemWiseRow, error)

	// GetMonthlyExpenses returns per-month expense totals
	GetMonthlyExpenses(ctx context.Context, filter ExpenseReportFilter) ([]MonthlyExpenseRow, error)

	// GetPaymentModeBreakdown returns outflow totals grouped by payment mode
	GetPaymentModeBreakdown(ctx context.Context, filter ExpenseReportFilter) ([]PaymentModeRow, error)
}
