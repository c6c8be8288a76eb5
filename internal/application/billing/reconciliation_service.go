package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReconciliationService runs the authoritative batch FIFO rebuild: wipe
// every allocation row and rebuild each vendor's allocations oldest-first.
// The run is destructive toward interactive allocations, so callers must
// pass Confirm explicitly.
type ReconciliationService struct {
	vendorRepo     partner.VendorRepository
	paymentRepo    billing.PaymentRepository
	entryRepo      billing.LedgerEntryRepository
	allocationRepo billing.AllocationRepository
	txManager      billing.TransactionManager
	allocator      *billing.AllocationService
	logger         *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	vendorRepo partner.VendorRepository,
	paymentRepo billing.PaymentRepository,
	entryRepo billing.LedgerEntryRepository,
	allocationRepo billing.AllocationRepository,
	txManager billing.TransactionManager,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		vendorRepo:     vendorRepo,
		paymentRepo:    paymentRepo,
		entryRepo:      entryRepo,
		allocationRepo: allocationRepo,
		txManager:      txManager,
		allocator:      billing.NewAllocationService(),
		logger:         logger,
	}
}

// Run wipes all allocations and rebuilds them vendor by vendor inside one
// transaction. A failing vendor is logged and skipped; its payments end up
// unallocated rather than failing the whole run. The rebuild is
// deterministic, so re-running on unchanged data reproduces identical rows.
func (s *ReconciliationService) Run(ctx context.Context, confirm bool) (*ReconciliationResult, error) {
	if !confirm {
		return nil, shared.NewDomainError("CONFIRMATION_REQUIRED",
			"Reconciliation replaces all existing allocations and must be explicitly confirmed")
	}

	result := &ReconciliationResult{
		TotalAllocated: decimal.Zero,
		StartedAt:      time.Now(),
	}

	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.allocationRepo.DeleteAll(txCtx); err != nil {
			return err
		}

		vendors, err := s.vendorRepo.FindAll(txCtx, shared.Filter{Page: 1, PageSize: -1})
		if err != nil {
			return err
		}

		for i := range vendors {
			vendor := &vendors[i]
			if err := s.rebuildVendor(txCtx, vendor, result); err != nil {
				s.logger.Warn("Skipping vendor during reconciliation",
					zap.String("vendor_id", vendor.ID.String()),
					zap.String("vendor", vendor.Name),
					zap.Error(err))
				result.VendorsSkipped++
				continue
			}
			result.VendorsProcessed++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.FinishedAt = time.Now()
	s.logger.Info("Reconciliation finished",
		zap.Int("vendors_processed", result.VendorsProcessed),
		zap.Int("vendors_skipped", result.VendorsSkipped),
		zap.Int("allocations_made", result.AllocationsMade),
		zap.String("total_allocated", result.TotalAllocated.StringFixed(2)))

	return result, nil
}

func (s *ReconciliationService) rebuildVendor(ctx context.Context, vendor *partner.Vendor, result *ReconciliationResult) error {
	payments, err := s.paymentRepo.FindByVendor(ctx, vendor.ID)
	if err != nil {
		return err
	}
	entries, err := s.entryRepo.FindByVendor(ctx, vendor.ID)
	if err != nil {
		return err
	}
	if len(payments) == 0 && len(entries) == 0 {
		return nil
	}

	paymentPtrs := make([]*billing.Payment, len(payments))
	for i := range payments {
		paymentPtrs[i] = &payments[i]
	}
	entryPtrs := make([]*billing.LedgerEntry, len(entries))
	for i := range entries {
		entryPtrs[i] = &entries[i]
	}

	rebuild := s.allocator.RebuildVendorAllocations(paymentPtrs, entryPtrs)

	rows := make([]*billing.Allocation, 0, len(rebuild.Allocations))
	for _, alloc := range rebuild.Allocations {
		row, err := billing.NewAllocation(alloc.PaymentID, alloc.EntryID, alloc.Amount)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		if err := s.allocationRepo.SaveBatch(ctx, rows); err != nil {
			return err
		}
	}

	for i := range payments {
		payment := &payments[i]
		newStatus, ok := rebuild.PaymentStatuses[payment.ID]
		if !ok || payment.Status == newStatus {
			continue
		}
		payment.Status = newStatus
		payment.IncrementVersion()
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}
	}

	result.AllocationsMade += len(rows)
	result.TotalAllocated = result.TotalAllocated.Add(rebuild.TotalAllocated)

	return nil
}
