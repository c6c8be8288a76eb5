package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/catalog"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/report"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// seedReportData builds a small but complete project ledger:
//
//	Sharma: billed 35000 (cement) + 10000 (sand), paid out 30000, allocated 30000
//	        -> due 15000, no advance
//	Verma:  billed 8000 (steel), paid out 10000, allocated 8000
//	        -> fully settled, advance 2000
func seedReportData(t *testing.T, ctx context.Context, db *gorm.DB) (sharmaID, vermaID, cementID uuid.UUID) {
	t.Helper()

	vendorRepo := NewGormVendorRepository(db)
	itemRepo := NewGormItemRepository(db)
	entryRepo := NewGormLedgerEntryRepository(db)
	paymentRepo := NewGormPaymentRepository(db)
	allocationRepo := NewGormAllocationRepository(db)

	sharma, err := partner.NewVendor("Sharma Cement Traders", "", "")
	require.NoError(t, err)
	verma, err := partner.NewVendor("Verma Steel", "", "")
	require.NoError(t, err)
	idle, err := partner.NewVendor("Idle Vendor", "", "")
	require.NoError(t, err)
	for _, v := range []*partner.Vendor{sharma, verma, idle} {
		require.NoError(t, vendorRepo.Save(ctx, v))
	}

	cement, err := catalog.NewMaterialItem("Cement", "BAG")
	require.NoError(t, err)
	sand, err := catalog.NewMaterialItem("Sand", "CFT")
	require.NoError(t, err)
	steel, err := catalog.NewMaterialItem("Steel", "TON")
	require.NoError(t, err)
	for _, i := range []*catalog.Item{cement, sand, steel} {
		require.NoError(t, itemRepo.Save(ctx, i))
	}

	cementEntry := mustEntry(t, day(2026, 1, 10), cement.ID, &sharma.ID, "100", "35000")
	sandEntry := mustEntry(t, day(2026, 1, 10), sand.ID, &sharma.ID, "500", "10000")
	steelEntry := mustEntry(t, day(2026, 2, 5), steel.ID, &verma.ID, "2", "8000")
	for _, e := range []*billing.LedgerEntry{cementEntry, sandEntry, steelEntry} {
		require.NoError(t, entryRepo.Save(ctx, e))
	}

	sharmaPayment := mustPayment(t, sharma.ID, day(2026, 1, 20), "30000", billing.PaymentModeBankTransfer, "NEFT-11")
	vermaPayment := mustPayment(t, verma.ID, day(2026, 2, 10), "10000", billing.PaymentModeUPI, "")
	for _, p := range []*billing.Payment{sharmaPayment, vermaPayment} {
		require.NoError(t, paymentRepo.Save(ctx, p))
	}

	require.NoError(t, allocationRepo.SaveBatch(ctx, []*billing.Allocation{
		mustAllocation(t, sharmaPayment.ID, cementEntry.ID, "30000"),
		mustAllocation(t, vermaPayment.ID, steelEntry.ID, "8000"),
	}))

	return sharma.ID, verma.ID, cement.ID
}

func TestGormReportRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormReportRepository(db)

	sharmaID, vermaID, cementID := seedReportData(t, ctx, db)

	t.Run("financial summary derives due and advance per side", func(t *testing.T) {
		summary, err := repo.GetFinancialSummary(ctx)
		require.NoError(t, err)

		assert.True(t, summary.TotalProjectCost.Equal(decimal.RequireFromString("53000")), summary.TotalProjectCost.String())
		assert.True(t, summary.TotalPaid.Equal(decimal.RequireFromString("38000")), summary.TotalPaid.String())
		// Sharma: 45000 billed - 30000 allocated; the sand entry is fully open
		assert.True(t, summary.TotalDue.Equal(decimal.RequireFromString("15000")), summary.TotalDue.String())
		// Verma's payment outlived their entries by 2000
		assert.True(t, summary.TotalAdvance.Equal(decimal.RequireFromString("2000")), summary.TotalAdvance.String())
		assert.Equal(t, int64(3), summary.EntryCount)
		assert.Equal(t, int64(2), summary.PaymentCount)
		assert.Equal(t, int64(3), summary.VendorCount)
	})

	t.Run("vendor ledger lists only vendors with activity", func(t *testing.T) {
		rows, err := repo.GetVendorLedger(ctx, report.ExpenseReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		sharmaRow := rows[0]
		assert.Equal(t, "Sharma Cement Traders", sharmaRow.VendorName)
		assert.True(t, sharmaRow.TotalBilled.Equal(decimal.RequireFromString("45000")))
		assert.True(t, sharmaRow.TotalPaidOut.Equal(decimal.RequireFromString("30000")))
		assert.True(t, sharmaRow.TotalAllocated.Equal(decimal.RequireFromString("30000")))
		assert.True(t, sharmaRow.DueAmount.Equal(decimal.RequireFromString("15000")))
		assert.True(t, sharmaRow.AdvanceAmount.IsZero())
		assert.Equal(t, int64(2), sharmaRow.EntryCount)
		assert.Equal(t, int64(1), sharmaRow.PaymentCount)

		vermaRow := rows[1]
		assert.Equal(t, vermaID, vermaRow.VendorID)
		assert.True(t, vermaRow.DueAmount.IsZero())
		assert.True(t, vermaRow.AdvanceAmount.Equal(decimal.RequireFromString("2000")))
	})

	t.Run("single vendor row and zero row for idle vendor", func(t *testing.T) {
		row, err := repo.GetVendorLedgerRow(ctx, sharmaID)
		require.NoError(t, err)
		assert.Equal(t, sharmaID, row.VendorID)
		assert.True(t, row.DueAmount.Equal(decimal.RequireFromString("15000")))

		vendorRepo := NewGormVendorRepository(db)
		idle, err := vendorRepo.FindByNormalizedName(ctx, partner.NormalizeName("Idle Vendor"))
		require.NoError(t, err)

		zeroRow, err := repo.GetVendorLedgerRow(ctx, idle.ID)
		require.NoError(t, err)
		assert.True(t, zeroRow.TotalBilled.IsZero())
		assert.True(t, zeroRow.TotalPaidOut.IsZero())
		assert.Equal(t, "Idle Vendor", zeroRow.VendorName)
	})

	t.Run("unknown vendor maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.GetVendorLedgerRow(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("date wise expenses group per day", func(t *testing.T) {
		rows, err := repo.GetDateWiseExpenses(ctx, report.ExpenseReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("45000")), rows[0].TotalAmount.String())
		assert.Equal(t, int64(2), rows[0].EntryCount)
		assert.True(t, rows[1].TotalAmount.Equal(decimal.RequireFromString("8000")))
	})

	t.Run("date wise respects the date filter", func(t *testing.T) {
		from := day(2026, 2, 1)
		rows, err := repo.GetDateWiseExpenses(ctx, report.ExpenseReportFilter{StartDate: &from})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(1), rows[0].EntryCount)
	})

	t.Run("item wise expenses rank by spend with TopN cap", func(t *testing.T) {
		rows, err := repo.GetItemWiseExpenses(ctx, report.ExpenseReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Cement", rows[0].ItemName)
		assert.True(t, rows[0].TotalQuantity.Equal(decimal.RequireFromString("100")))
		assert.Equal(t, "MATERIAL", rows[0].ItemType)

		top, err := repo.GetItemWiseExpenses(ctx, report.ExpenseReportFilter{TopN: 1})
		require.NoError(t, err)
		require.Len(t, top, 1)
		assert.Equal(t, cementID, top[0].ItemID)
	})

	t.Run("item wise honors vendor filter", func(t *testing.T) {
		rows, err := repo.GetItemWiseExpenses(ctx, report.ExpenseReportFilter{VendorID: &vermaID})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Steel", rows[0].ItemName)
	})

	t.Run("monthly expenses group by calendar month", func(t *testing.T) {
		rows, err := repo.GetMonthlyExpenses(ctx, report.ExpenseReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 2026, rows[0].Year)
		assert.Equal(t, 1, rows[0].Month)
		assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("45000")))
		assert.Equal(t, 2, rows[1].Month)
	})

	t.Run("payment mode breakdown", func(t *testing.T) {
		rows, err := repo.GetPaymentModeBreakdown(ctx, report.ExpenseReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "BANK_TRANSFER", rows[0].Mode)
		assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("30000")))
		assert.Equal(t, int64(1), rows[0].PaymentCount)
		assert.Equal(t, "UPI", rows[1].Mode)
	})
}
