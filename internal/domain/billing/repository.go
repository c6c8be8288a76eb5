package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// LedgerEntryRepository defines the interface for ledger entry persistence
type LedgerEntryRepository interface {
	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)

	// FindByIDs finds multiple ledger entries by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]LedgerEntry, error)

	// FindByVendor finds all entries whose paid-to vendor matches
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]LedgerEntry, error)

	// FindAll finds all entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]LedgerEntry, error)

	// Save creates or updates a ledger entry
	Save(ctx context.Context, entry *LedgerEntry) error

	// SaveWithLock updates a ledger entry with optimistic locking;
	// returns shared.ErrConcurrencyConflict if the stored version moved
	SaveWithLock(ctx context.Context, entry *LedgerEntry, expectedVersion int) error

	// Delete deletes a ledger entry
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumTotalAmount sums total_amount over all entries
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByVendor finds all payments made to a vendor
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]Payment, error)

	// FindAll finds all payments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error

	// SaveWithLock updates a payment with optimistic locking;
	// returns shared.ErrConcurrencyConflict if the stored version moved
	SaveWithLock(ctx context.Context, payment *Payment, expectedVersion int) error

	// Delete deletes a payment
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumAmount sums amount over all payments
	SumAmount(ctx context.Context) (decimal.Decimal, error)
}

// AllocationRepository defines the interface for allocation persistence
type AllocationRepository interface {
	// FindByPayment finds all allocations for a payment
	FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]Allocation, error)

	// FindByEntry finds all allocations for a ledger entry
	FindByEntry(ctx context.Context, entryID uuid.UUID) ([]Allocation, error)

	// Save creates an allocation row
	Save(ctx context.Context, allocation *Allocation) error

	// SaveBatch creates multiple allocation rows
	SaveBatch(ctx context.Context, allocations []*Allocation) error

	// DeleteAll deletes every allocation row (full reconciliation rebuild)
	DeleteAll(ctx context.Context) error

	// DeleteByVendor deletes all allocations whose payment belongs to the vendor
	DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error

	// SumAllocatedForPayment returns the live allocation sum for a payment
	SumAllocatedForPayment(ctx context.Context, paymentID uuid.UUID) (decimal.Decimal, error)

	// SumAllocatedForEntry returns the live allocation sum for an entry
	SumAllocatedForEntry(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error)

	// SumAllocatedForEntries returns live allocation sums keyed by entry ID
	SumAllocatedForEntries(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// CountForPayment counts allocation rows referencing a payment
	CountForPayment(ctx context.Context, paymentID uuid.UUID) (int64, error)

	// CountForEntry counts allocation rows referencing an entry
	CountForEntry(ctx context.Context, entryID uuid.UUID) (int64, error)

	// SumAllocated sums allocated_amount over all allocation rows
	SumAllocated(ctx context.Context) (decimal.Decimal, error)
}

// TransactionManager runs a function inside a database transaction. The
// repositories resolved from the transactional context see uncommitted
// writes; returning an error rolls everything back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
