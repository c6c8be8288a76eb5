package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/report"
	"github.com/sitekhata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReportRepository implements ReportRepository with SQL aggregation.
// Nothing here mutates state; every figure is derived from the live entry,
// payment and allocation rows at query time.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// GetFinancialSummary returns the project-level summary. TotalPaid is the
// allocation sum, not the payment sum; the difference between the two is
// money sitting with vendors as advance.
func (r *GormReportRepository) GetFinancialSummary(ctx context.Context) (*report.FinancialSummary, error) {
	db := dbFor(ctx, r.db)

	var entryAgg struct {
		Total decimal.NullDecimal
		Count int64
	}
	if err := db.Raw(
		`SELECT SUM(total_amount) AS total, COUNT(*) AS count FROM ledger_entries`,
	).Scan(&entryAgg).Error; err != nil {
		return nil, err
	}

	var paymentAgg struct {
		Count int64
	}
	if err := db.Raw(
		`SELECT COUNT(*) AS count FROM payments`,
	).Scan(&paymentAgg).Error; err != nil {
		return nil, err
	}

	var allocated decimal.NullDecimal
	if err := db.Raw(
		`SELECT SUM(amount) FROM payment_allocations`,
	).Scan(&allocated).Error; err != nil {
		return nil, err
	}

	// Due is summed per entry and advance per payment so an unallocated
	// advance on one vendor never hides an outstanding due on another.
	var totalDue decimal.NullDecimal
	if err := db.Raw(
		`SELECT SUM(e.total_amount - COALESCE(a.allocated, 0))
		 FROM ledger_entries e
		 LEFT JOIN (
		     SELECT entry_id, SUM(amount) AS allocated
		     FROM payment_allocations GROUP BY entry_id
		 ) a ON a.entry_id = e.id
		 WHERE e.total_amount - COALESCE(a.allocated, 0) > 0`,
	).Scan(&totalDue).Error; err != nil {
		return nil, err
	}

	var totalAdvance decimal.NullDecimal
	if err := db.Raw(
		`SELECT SUM(p.amount - COALESCE(a.allocated, 0))
		 FROM payments p
		 LEFT JOIN (
		     SELECT payment_id, SUM(amount) AS allocated
		     FROM payment_allocations GROUP BY payment_id
		 ) a ON a.payment_id = p.id
		 WHERE p.amount - COALESCE(a.allocated, 0) > 0`,
	).Scan(&totalAdvance).Error; err != nil {
		return nil, err
	}

	var vendorCount int64
	if err := db.Model(&partner.Vendor{}).Count(&vendorCount).Error; err != nil {
		return nil, err
	}

	return &report.FinancialSummary{
		TotalProjectCost: orZero(entryAgg.Total),
		TotalPaid:        orZero(allocated),
		TotalDue:         orZero(totalDue),
		TotalAdvance:     orZero(totalAdvance),
		EntryCount:       entryAgg.Count,
		PaymentCount:     paymentAgg.Count,
		VendorCount:      vendorCount,
	}, nil
}

// GetVendorLedger returns one row per vendor that has any billing or payment
// activity, ordered by vendor name
func (r *GormReportRepository) GetVendorLedger(ctx context.Context, filter report.ExpenseReportFilter) ([]report.VendorLedgerRow, error) {
	return r.queryVendorLedger(ctx, filter, nil)
}

// GetVendorLedgerRow returns the ledger row for a single vendor. A vendor
// with no activity yields a zero row rather than an error.
func (r *GormReportRepository) GetVendorLedgerRow(ctx context.Context, vendorID uuid.UUID) (*report.VendorLedgerRow, error) {
	var vendor partner.Vendor
	if err := dbFor(ctx, r.db).First(&vendor, "id = ?", vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.queryVendorLedger(ctx, report.ExpenseReportFilter{}, &vendorID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &report.VendorLedgerRow{
			VendorID:       vendor.ID,
			VendorName:     vendor.Name,
			TotalBilled:    decimal.Zero,
			TotalPaidOut:   decimal.Zero,
			TotalAllocated: decimal.Zero,
			DueAmount:      decimal.Zero,
			AdvanceAmount:  decimal.Zero,
		}, nil
	}
	return &rows[0], nil
}

func (r *GormReportRepository) queryVendorLedger(ctx context.Context, filter report.ExpenseReportFilter, vendorID *uuid.UUID) ([]report.VendorLedgerRow, error) {
	entryConds, entryArgs := dateConds("entry_date", filter)
	paymentConds, paymentArgs := dateConds("payment_date", filter)

	query := fmt.Sprintf(`
		SELECT v.id AS vendor_id,
		       v.name AS vendor_name,
		       COALESCE(b.total_billed, 0) AS total_billed,
		       COALESCE(b.entry_count, 0) AS entry_count,
		       COALESCE(p.total_paid_out, 0) AS total_paid_out,
		       COALESCE(p.payment_count, 0) AS payment_count,
		       COALESCE(al.total_allocated, 0) AS total_allocated
		FROM vendors v
		LEFT JOIN (
		    SELECT paid_to_vendor_id AS vid, SUM(total_amount) AS total_billed, COUNT(*) AS entry_count
		    FROM ledger_entries
		    WHERE paid_to_vendor_id IS NOT NULL%s
		    GROUP BY paid_to_vendor_id
		) b ON b.vid = v.id
		LEFT JOIN (
		    SELECT vendor_id AS vid, SUM(amount) AS total_paid_out, COUNT(*) AS payment_count
		    FROM payments
		    WHERE 1 = 1%s
		    GROUP BY vendor_id
		) p ON p.vid = v.id
		LEFT JOIN (
		    SELECT pm.vendor_id AS vid, SUM(a.amount) AS total_allocated
		    FROM payment_allocations a
		    JOIN payments pm ON pm.id = a.payment_id
		    GROUP BY pm.vendor_id
		) al ON al.vid = v.id
		WHERE (b.vid IS NOT NULL OR p.vid IS NOT NULL)%s
		ORDER BY v.name ASC`,
		entryConds, paymentConds, vendorCond(vendorID))

	args := append(entryArgs, paymentArgs...)
	if vendorID != nil {
		args = append(args, *vendorID)
	}

	var raw []struct {
		VendorID       uuid.UUID
		VendorName     string
		TotalBilled    decimal.Decimal
		EntryCount     int64
		TotalPaidOut   decimal.Decimal
		PaymentCount   int64
		TotalAllocated decimal.Decimal
	}
	if err := dbFor(ctx, r.db).Raw(query, args...).Scan(&raw).Error; err != nil {
		return nil, err
	}

	rows := make([]report.VendorLedgerRow, len(raw))
	for i, row := range raw {
		due := row.TotalBilled.Sub(row.TotalAllocated)
		if due.IsNegative() {
			due = decimal.Zero
		}
		advance := row.TotalPaidOut.Sub(row.TotalAllocated)
		if advance.IsNegative() {
			advance = decimal.Zero
		}
		rows[i] = report.VendorLedgerRow{
			VendorID:       row.VendorID,
			VendorName:     row.VendorName,
			TotalBilled:    row.TotalBilled,
			TotalPaidOut:   row.TotalPaidOut,
			TotalAllocated: row.TotalAllocated,
			DueAmount:      due,
			AdvanceAmount:  advance,
			EntryCount:     row.EntryCount,
			PaymentCount:   row.PaymentCount,
		}
	}
	return rows, nil
}

// GetDateWiseExpenses returns per-day expense totals, oldest day first
func (r *GormReportRepository) GetDateWiseExpenses(ctx context.Context, filter report.ExpenseReportFilter) ([]report.DateWiseExpenseRow, error) {
	conds, args := entryConds(filter)

	var rows []report.DateWiseExpenseRow
	query := fmt.Sprintf(`
		SELECT entry_date AS date, SUM(total_amount) AS total_amount, COUNT(*) AS entry_count
		FROM ledger_entries
		WHERE 1 = 1%s
		GROUP BY entry_date
		ORDER BY entry_date ASC`, conds)
	if err := dbFor(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetItemWiseExpenses returns per-item cost and quantity totals, biggest
// spend first; TopN caps the result when positive
func (r *GormReportRepository) GetItemWiseExpenses(ctx context.Context, filter report.ExpenseReportFilter) ([]report.ItemWiseRow, error) {
	conds, args := entryConds(filter)

	limit := ""
	if filter.TopN > 0 {
		limit = fmt.Sprintf(" LIMIT %d", filter.TopN)
	}

	var rows []report.ItemWiseRow
	query := fmt.Sprintf(`
		SELECT i.id AS item_id,
		       i.name AS item_name,
		       i.type AS item_type,
		       i.unit AS unit,
		       SUM(e.quantity) AS total_quantity,
		       SUM(e.total_amount) AS total_amount,
		       COUNT(*) AS entry_count
		FROM ledger_entries e
		JOIN items i ON i.id = e.item_id
		WHERE 1 = 1%s
		GROUP BY i.id, i.name, i.type, i.unit
		ORDER BY total_amount DESC%s`, strings.ReplaceAll(conds, "entry_date", "e.entry_date"), limit)
	if err := dbFor(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetMonthlyExpenses returns per-month expense totals in chronological order
func (r *GormReportRepository) GetMonthlyExpenses(ctx context.Context, filter report.ExpenseReportFilter) ([]report.MonthlyExpenseRow, error) {
	conds, args := entryConds(filter)

	yearExpr, monthExpr := r.monthExprs("entry_date")

	var rows []report.MonthlyExpenseRow
	query := fmt.Sprintf(`
		SELECT %s AS year, %s AS month, SUM(total_amount) AS total_amount, COUNT(*) AS entry_count
		FROM ledger_entries
		WHERE 1 = 1%s
		GROUP BY %s, %s
		ORDER BY year ASC, month ASC`, yearExpr, monthExpr, conds, yearExpr, monthExpr)
	if err := dbFor(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPaymentModeBreakdown returns outflow totals grouped by payment mode
func (r *GormReportRepository) GetPaymentModeBreakdown(ctx context.Context, filter report.ExpenseReportFilter) ([]report.PaymentModeRow, error) {
	conds, args := dateConds("payment_date", filter)
	if filter.VendorID != nil {
		conds += " AND vendor_id = ?"
		args = append(args, *filter.VendorID)
	}

	var rows []report.PaymentModeRow
	query := fmt.Sprintf(`
		SELECT mode, SUM(amount) AS total_amount, COUNT(*) AS payment_count
		FROM payments
		WHERE 1 = 1%s
		GROUP BY mode
		ORDER BY total_amount DESC`, conds)
	if err := dbFor(ctx, r.db).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// monthExprs returns the year and month extraction expressions for the
// active SQL dialect
func (r *GormReportRepository) monthExprs(column string) (string, string) {
	if r.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", column),
			fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", column)
	}
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", column),
		fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", column)
}

// dateConds builds the date-range condition fragment for the given column
func dateConds(column string, filter report.ExpenseReportFilter) (string, []interface{}) {
	conds := ""
	args := []interface{}{}
	if filter.StartDate != nil {
		conds += fmt.Sprintf(" AND %s >= ?", column)
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conds += fmt.Sprintf(" AND %s <= ?", column)
		args = append(args, *filter.EndDate)
	}
	return conds, args
}

// entryConds builds the full condition fragment for ledger entry queries
func entryConds(filter report.ExpenseReportFilter) (string, []interface{}) {
	conds, args := dateConds("entry_date", filter)
	if filter.VendorID != nil {
		conds += " AND paid_to_vendor_id = ?"
		args = append(args, *filter.VendorID)
	}
	if filter.ItemID != nil {
		conds += " AND item_id = ?"
		args = append(args, *filter.ItemID)
	}
	return conds, args
}

// vendorCond returns the outer vendor restriction for the ledger query
func vendorCond(vendorID *uuid.UUID) string {
	if vendorID == nil {
		return ""
	}
	return " AND v.id = ?"
}

// orZero unwraps a nullable decimal aggregate, treating NULL as zero
func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
