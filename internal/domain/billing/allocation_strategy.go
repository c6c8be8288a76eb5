package billing

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// AllocationStrategyType defines the type of allocation strategy
type AllocationStrategyType string

// AllocationStrategyTypeFIFO pays the oldest entries first by date.
const AllocationStrategyTypeFIFO AllocationStrategyType = "FIFO"

// AllocationTarget represents one ledger entry's claim on a payment
type AllocationTarget struct {
	EntryID     uuid.UUID       // ID of the ledger entry
	EntryDate   time.Time       // Entry date for FIFO ordering
	DueAmount   decimal.Decimal // Amount still due on the entry
	TotalAmount decimal.Decimal // Original entry amount, for status tracking
}

// AllocationLine represents one planned payment-to-entry allocation
type AllocationLine struct {
	EntryID uuid.UUID       // ID of the ledger entry
	Amount  decimal.Decimal // Amount to allocate
}

// StrategyResult represents the complete outcome of an allocation strategy
type StrategyResult struct {
	Lines                []AllocationLine // Allocations to create
	TotalAllocated       decimal.Decimal  // Total amount allocated
	RemainingAmount      decimal.Decimal  // Payment amount left unallocated
	FullyAllocated       bool             // True if the whole amount was placed
	EntriesFullyPaid     []uuid.UUID      // Entries that will be fully paid
	EntriesPartiallyPaid []uuid.UUID      // Entries that will be partially paid
}

// AllocationStrategy plans how one payment amount is spread across
// outstanding ledger entries
type AllocationStrategy interface {
	// StrategyType returns the allocation strategy type
	StrategyType() AllocationStrategyType
	// Allocate calculates how to spread the given amount across targets
	Allocate(amount decimal.Decimal, targets []AllocationTarget) (*StrategyResult, error)
}

// sortTargetsFIFO orders targets ascending by (entry date, id). The id
// tie-break makes the order reproducible regardless of insertion order or
// clock ties.
func sortTargetsFIFO(targets []AllocationTarget) []AllocationTarget {
	sorted := make([]AllocationTarget, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].EntryDate.Equal(sorted[j].EntryDate) {
			return sorted[i].EntryDate.Before(sorted[j].EntryDate)
		}
		return strings.Compare(sorted[i].EntryID.String(), sorted[j].EntryID.String()) < 0
	})
	return sorted
}

// FIFOAllocationStrategy allocates to the oldest outstanding entries first
type FIFOAllocationStrategy struct{}

// NewFIFOAllocationStrategy creates a new FIFO allocation strategy
func NewFIFOAllocationStrategy() *FIFOAllocationStrategy {
	return &FIFOAllocationStrategy{}
}

// StrategyType returns the allocation strategy type
func (s *FIFOAllocationStrategy) StrategyType() AllocationStrategyType {
	return AllocationStrategyTypeFIFO
}

// Allocate allocates the amount to targets in FIFO order (oldest first)
func (s *FIFOAllocationStrategy) Allocate(amount decimal.Decimal, targets []AllocationTarget) (*StrategyResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	result := newStrategyResult(amount)
	if len(targets) == 0 {
		return result, nil
	}

	for _, target := range sortTargetsFIFO(targets) {
		if result.RemainingAmount.IsZero() {
			break
		}
		if target.DueAmount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		allocAmount := decimal.Min(result.RemainingAmount, target.DueAmount)

		result.Lines = append(result.Lines, AllocationLine{
			EntryID: target.EntryID,
			Amount:  allocAmount,
		})
		result.TotalAllocated = result.TotalAllocated.Add(allocAmount)
		result.RemainingAmount = result.RemainingAmount.Sub(allocAmount)

		if allocAmount.GreaterThanOrEqual(target.DueAmount) {
			result.EntriesFullyPaid = append(result.EntriesFullyPaid, target.EntryID)
		} else {
			result.EntriesPartiallyPaid = append(result.EntriesPartiallyPaid, target.EntryID)
		}
	}

	result.FullyAllocated = result.RemainingAmount.IsZero()
	return result, nil
}

func newStrategyResult(amount decimal.Decimal) *StrategyResult {
	return &StrategyResult{
		Lines:                make([]AllocationLine, 0),
		TotalAllocated:       decimal.Zero,
		RemainingAmount:      amount,
		FullyAllocated:       false,
		EntriesFullyPaid:     make([]uuid.UUID, 0),
		EntriesPartiallyPaid: make([]uuid.UUID, 0),
	}
}
