package billing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/domain/shared/valueobject"
)

// OverAllocationError is returned when a requested allocation batch would
// push a payment past its amount. It carries the computed figures so the
// operator can correct the request.
type OverAllocationError struct {
	CurrentAllocated decimal.Decimal `json:"currentAllocated"`
	RequestedTotal   decimal.Decimal `json:"requestedTotal"`
	PaymentAmount    decimal.Decimal `json:"paymentAmount"`
}

// Error implements the error interface
func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("allocation exceeds payment amount: current %s + requested %s > %s",
		e.CurrentAllocated.StringFixed(2), e.RequestedTotal.StringFixed(2), e.PaymentAmount.StringFixed(2))
}

// AllocationRequest is one operator-requested line of an interactive
// allocation batch
type AllocationRequest struct {
	EntryID uuid.UUID
	Amount  decimal.Decimal
}

// EntryState pairs a ledger entry with its live allocation sum
type EntryState struct {
	Entry     *LedgerEntry
	Allocated decimal.Decimal
}

// PaymentAllocationPlan is the validated outcome of an interactive
// allocation request. The caller persists the lines and the new payment
// status inside one transaction, or discards the whole plan.
type PaymentAllocationPlan struct {
	Lines          []AllocationLine
	TotalAllocated decimal.Decimal // Allocation sum for the payment after applying
	NewStatus      AllocationStatus
}

// RebuiltAllocation is one payment-to-entry allocation produced by the
// batch reconciliation pass
type RebuiltAllocation struct {
	PaymentID uuid.UUID
	EntryID   uuid.UUID
	Amount    decimal.Decimal
}

// VendorRebuildResult is the outcome of rebuilding one vendor's
// allocations from scratch
type VendorRebuildResult struct {
	Allocations     []RebuiltAllocation
	PaymentStatuses map[uuid.UUID]AllocationStatus
	TotalAllocated  decimal.Decimal
}

// AllocationService implements the two allocation passes: the interactive
// validated allocator and the per-vendor FIFO rebuild. Both are pure
// planning functions; the application layer owns the transaction and
// decides commit versus rollback from the returned value.
type AllocationService struct {
	fifo AllocationStrategy
}

// NewAllocationService creates a new allocation service
func NewAllocationService() *AllocationService {
	return &AllocationService{fifo: NewFIFOAllocationStrategy()}
}

// PlanPaymentAllocation validates an operator's allocation batch against a
// payment and returns the plan to persist. All-or-nothing: the first
// violation rejects the entire batch.
//
// currentAllocated is the live allocation sum for the payment; entries
// maps each requested entry id to the entry and its live allocation sum.
func (s *AllocationService) PlanPaymentAllocation(payment *Payment, currentAllocated decimal.Decimal, requests []AllocationRequest, entries map[uuid.UUID]EntryState) (*PaymentAllocationPlan, error) {
	if payment == nil {
		return nil, shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
	}
	if len(requests) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Allocation list cannot be empty")
	}

	requestedTotal := decimal.Zero
	for _, req := range requests {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
		}
		requestedTotal = requestedTotal.Add(req.Amount)
	}

	if currentAllocated.Add(requestedTotal).GreaterThan(payment.Amount) {
		return nil, &OverAllocationError{
			CurrentAllocated: currentAllocated,
			RequestedTotal:   requestedTotal,
			PaymentAmount:    payment.Amount,
		}
	}

	lines := make([]AllocationLine, 0, len(requests))
	batchAllocated := make(map[uuid.UUID]decimal.Decimal, len(requests))
	for _, req := range requests {
		state, ok := entries[req.EntryID]
		if !ok || state.Entry == nil {
			return nil, shared.NewDomainError("ENTRY_NOT_FOUND", fmt.Sprintf("Ledger entry %s not found", req.EntryID))
		}
		entry := state.Entry

		if !entry.HasPayee() || *entry.PaidToVendorID != payment.VendorID {
			return nil, shared.NewDomainError("VENDOR_MISMATCH", "Entry does not belong to the payment's vendor")
		}

		// Earlier lines in the batch shrink the due, so an entry repeated
		// across lines cannot be allocated past its remainder.
		due := entry.DueAmount(state.Allocated.Add(batchAllocated[req.EntryID]))
		if req.Amount.GreaterThan(due.Add(valueobject.Tolerance)) {
			return nil, shared.NewDomainError("ENTRY_OVER_ALLOCATED",
				fmt.Sprintf("Requested %s exceeds due %s on entry %s", req.Amount.StringFixed(2), due.StringFixed(2), entry.ID))
		}
		batchAllocated[req.EntryID] = batchAllocated[req.EntryID].Add(req.Amount)

		lines = append(lines, AllocationLine{EntryID: req.EntryID, Amount: req.Amount})
	}

	totalAfter := currentAllocated.Add(requestedTotal)
	return &PaymentAllocationPlan{
		Lines:          lines,
		TotalAllocated: totalAfter,
		NewStatus:      DeriveAllocationStatus(totalAfter, payment.Amount),
	}, nil
}

// RebuildVendorAllocations recomputes one vendor's allocations from
// scratch. Payments are spread oldest-first by the FIFO strategy over
// locally owned remaining dues; the pass is deterministic because both
// payments and entries order by (date, id).
//
// Entries without a payee are excluded. The caller is expected to have
// wiped the vendor's existing allocation rows before persisting the
// result.
func (s *AllocationService) RebuildVendorAllocations(payments []*Payment, entries []*LedgerEntry) *VendorRebuildResult {
	sortedPayments := make([]*Payment, len(payments))
	copy(sortedPayments, payments)
	sort.Slice(sortedPayments, func(i, j int) bool {
		if !sortedPayments[i].PaymentDate.Equal(sortedPayments[j].PaymentDate) {
			return sortedPayments[i].PaymentDate.Before(sortedPayments[j].PaymentDate)
		}
		return strings.Compare(sortedPayments[i].ID.String(), sortedPayments[j].ID.String()) < 0
	})

	// Remaining dues are owned by this pass; nothing is shared across
	// vendors. The strategy orders targets itself, so input order here
	// does not matter.
	targets := make([]AllocationTarget, 0, len(entries))
	for _, entry := range entries {
		if entry.HasPayee() {
			targets = append(targets, AllocationTarget{
				EntryID:     entry.ID,
				EntryDate:   entry.EntryDate,
				DueAmount:   entry.TotalAmount,
				TotalAmount: entry.TotalAmount,
			})
		}
	}
	targetIndex := make(map[uuid.UUID]int, len(targets))
	for i, target := range targets {
		targetIndex[target.EntryID] = i
	}

	result := &VendorRebuildResult{
		Allocations:     make([]RebuiltAllocation, 0),
		PaymentStatuses: make(map[uuid.UUID]AllocationStatus, len(sortedPayments)),
		TotalAllocated:  decimal.Zero,
	}

	for _, payment := range sortedPayments {
		result.PaymentStatuses[payment.ID] = AllocationStatusUnallocated
		if payment.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		planned, err := s.fifo.Allocate(payment.Amount, targets)
		if err != nil {
			continue
		}

		for _, line := range planned.Lines {
			result.Allocations = append(result.Allocations, RebuiltAllocation{
				PaymentID: payment.ID,
				EntryID:   line.EntryID,
				Amount:    line.Amount,
			})
			result.TotalAllocated = result.TotalAllocated.Add(line.Amount)
			i := targetIndex[line.EntryID]
			targets[i].DueAmount = targets[i].DueAmount.Sub(line.Amount)
		}

		switch {
		case planned.TotalAllocated.IsZero():
			// Nothing left to match; stays UNALLOCATED.
		case planned.RemainingAmount.IsZero():
			result.PaymentStatuses[payment.ID] = AllocationStatusFullyAllocated
		default:
			result.PaymentStatuses[payment.ID] = AllocationStatusPartial
		}
	}

	return result
}
