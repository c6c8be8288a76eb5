package billing

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// AllocationAppService applies interactive allocation batches. Planning is
// delegated to the domain allocation service; this layer loads the live
// state, runs the plan inside a transaction, and persists the rows plus the
// payment's recomputed status.
type AllocationAppService struct {
	paymentRepo    billing.PaymentRepository
	entryRepo      billing.LedgerEntryRepository
	allocationRepo billing.AllocationRepository
	txManager      billing.TransactionManager
	allocator      *billing.AllocationService
	logger         *zap.Logger
}

// NewAllocationAppService creates a new AllocationAppService
func NewAllocationAppService(
	paymentRepo billing.PaymentRepository,
	entryRepo billing.LedgerEntryRepository,
	allocationRepo billing.AllocationRepository,
	txManager billing.TransactionManager,
	logger *zap.Logger,
) *AllocationAppService {
	return &AllocationAppService{
		paymentRepo:    paymentRepo,
		entryRepo:      entryRepo,
		allocationRepo: allocationRepo,
		txManager:      txManager,
		allocator:      billing.NewAllocationService(),
		logger:         logger,
	}
}

// Preview returns the payment's remaining amount and the payee vendor's
// entries that still carry a due balance, oldest first. It reads live
// allocation sums but writes nothing.
func (s *AllocationAppService) Preview(ctx context.Context, paymentID uuid.UUID) (*AllocationPreviewResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	currentAllocated, err := s.allocationRepo.SumAllocatedForPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindByVendor(ctx, payment.VendorID)
	if err != nil {
		return nil, err
	}

	entryIDs := make([]uuid.UUID, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].ID
	}
	allocatedByEntry, err := s.allocationRepo.SumAllocatedForEntries(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	open := make([]LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		allocated := allocatedByEntry[entry.ID]
		if entry.DueAmount(allocated).IsPositive() {
			open = append(open, ToLedgerEntryResponse(entry, allocated))
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if !open[i].EntryDate.Equal(open[j].EntryDate) {
			return open[i].EntryDate.Before(open[j].EntryDate)
		}
		return open[i].ID.String() < open[j].ID.String()
	})

	return &AllocationPreviewResponse{
		PaymentID:       paymentID,
		VendorID:        payment.VendorID,
		Amount:          payment.Amount,
		AllocatedAmount: currentAllocated,
		RemainingAmount: payment.RemainingAmount(currentAllocated),
		OpenEntries:     open,
	}, nil
}

// Allocate validates and applies an allocation batch against one payment.
// The whole batch commits or none of it does: a single invalid line rolls
// back every row.
func (s *AllocationAppService) Allocate(ctx context.Context, paymentID uuid.UUID, req AllocatePaymentRequest) (*AllocatePaymentResponse, error) {
	var response *AllocatePaymentResponse

	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		payment, err := s.paymentRepo.FindByID(txCtx, paymentID)
		if err != nil {
			return err
		}

		currentAllocated, err := s.allocationRepo.SumAllocatedForPayment(txCtx, paymentID)
		if err != nil {
			return err
		}

		requests := make([]billing.AllocationRequest, len(req.Allocations))
		entryIDs := make([]uuid.UUID, len(req.Allocations))
		for i, line := range req.Allocations {
			requests[i] = billing.AllocationRequest{EntryID: line.EntryID, Amount: line.Amount}
			entryIDs[i] = line.EntryID
		}

		entries, err := s.entryRepo.FindByIDs(txCtx, entryIDs)
		if err != nil {
			return err
		}
		allocatedByEntry, err := s.allocationRepo.SumAllocatedForEntries(txCtx, entryIDs)
		if err != nil {
			return err
		}

		states := make(map[uuid.UUID]billing.EntryState, len(entries))
		for i := range entries {
			entry := &entries[i]
			states[entry.ID] = billing.EntryState{Entry: entry, Allocated: allocatedByEntry[entry.ID]}
		}

		plan, err := s.allocator.PlanPaymentAllocation(payment, currentAllocated, requests, states)
		if err != nil {
			return err
		}

		rows := make([]*billing.Allocation, 0, len(plan.Lines))
		for _, line := range plan.Lines {
			row, err := billing.NewAllocation(paymentID, line.EntryID, line.Amount)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		if err := s.allocationRepo.SaveBatch(txCtx, rows); err != nil {
			return err
		}

		expectedVersion := payment.GetVersion()
		payment.RecomputeStatus(plan.TotalAllocated)
		if err := s.paymentRepo.SaveWithLock(txCtx, payment, expectedVersion); err != nil {
			return err
		}

		allocations := make([]AllocationResponse, len(rows))
		for i, row := range rows {
			allocations[i] = ToAllocationResponse(row)
		}

		response = &AllocatePaymentResponse{
			PaymentID:       paymentID,
			Allocations:     allocations,
			AllocatedAmount: plan.TotalAllocated,
			RemainingAmount: payment.RemainingAmount(plan.TotalAllocated),
			Status:          string(plan.NewStatus),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment allocation applied",
		zap.String("payment_id", paymentID.String()),
		zap.Int("lines", len(response.Allocations)),
		zap.String("status", response.Status))

	return response, nil
}
