// Package billing provides domain models for recording project
// expenditures, vendor payments, and the allocation of payments against
// outstanding ledger entries.
//
// Key Aggregates:
//   - LedgerEntry: One incurred material/service cost, charged against a
//     paid-to vendor. Financial fields freeze once any allocation exists.
//   - Payment: Money paid out to a vendor, with a derived allocation
//     status (UNALLOCATED / PARTIAL / FULLY_ALLOCATED).
//   - Allocation: An immutable link carrying a specific amount of one
//     payment to one ledger entry.
//
// Domain Services:
//   - AllocationService: Plans interactive validated allocations
//     (all-or-nothing batches against one payment) and rebuilds a
//     vendor's full allocation set with deterministic oldest-first
//     matching.
//   - AllocationStrategy: FIFO and manual planning of how one payment
//     amount spreads across outstanding entries.
//
// Monetary comparisons use an absolute tolerance of 0.01 so that
// rate-rounding residue never blocks settlement.
package billing
