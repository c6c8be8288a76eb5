package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// LedgerEntry represents one incurred material or service cost charged
// against a vendor. TotalAmount is authoritative; Rate is derived from
// TotalAmount / Quantity and recomputed on every financial edit.
// It is the aggregate root for expenditure records.
type LedgerEntry struct {
	shared.BaseAggregateRoot
	EntryDate      time.Time       `gorm:"type:date;not null;index"`
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceVendorID *uuid.UUID      `gorm:"type:uuid;index"` // Who supplied the goods; may differ from the payee
	PaidToVendorID *uuid.UUID      `gorm:"type:uuid;index"` // Whose balance this entry counts against
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit           string          `gorm:"type:varchar(50)"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Rate           decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Derived, display only
	Remarks        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// NewLedgerEntry creates a new ledger entry
func NewLedgerEntry(entryDate time.Time, itemID uuid.UUID, sourceVendorID, paidToVendorID *uuid.UUID, quantity decimal.Decimal, unit string, totalAmount decimal.Decimal, remarks string) (*LedgerEntry, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Entry must reference an item")
	}
	if err := validateEntryAmounts(quantity, totalAmount); err != nil {
		return nil, err
	}

	entry := &LedgerEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntryDate:         entryDate,
		ItemID:            itemID,
		SourceVendorID:    sourceVendorID,
		PaidToVendorID:    paidToVendorID,
		Quantity:          quantity,
		Unit:              unit,
		TotalAmount:       totalAmount,
		Rate:              deriveRate(totalAmount, quantity),
		Remarks:           remarks,
	}

	entry.AddDomainEvent(NewLedgerEntryCreatedEvent(entry))

	return entry, nil
}

// UpdateFinancials changes quantity and total amount and recomputes the
// derived rate. Callers must verify the entry has no allocations before
// invoking this; an allocated entry's financial fields are frozen.
func (e *LedgerEntry) UpdateFinancials(quantity, totalAmount decimal.Decimal) error {
	if err := validateEntryAmounts(quantity, totalAmount); err != nil {
		return err
	}

	e.Quantity = quantity
	e.TotalAmount = totalAmount
	e.Rate = deriveRate(totalAmount, quantity)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewLedgerEntryUpdatedEvent(e))

	return nil
}

// UpdateDetails changes the non-financial fields of the entry
func (e *LedgerEntry) UpdateDetails(entryDate time.Time, itemID uuid.UUID, sourceVendorID, paidToVendorID *uuid.UUID, unit, remarks string) error {
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Entry must reference an item")
	}

	e.EntryDate = entryDate
	e.ItemID = itemID
	e.SourceVendorID = sourceVendorID
	e.PaidToVendorID = paidToVendorID
	e.Unit = unit
	e.Remarks = remarks
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewLedgerEntryUpdatedEvent(e))

	return nil
}

// HasPayee returns true if the entry counts against some vendor's balance.
// Entries without a payee are excluded from allocation.
func (e *LedgerEntry) HasPayee() bool {
	return e.PaidToVendorID != nil && *e.PaidToVendorID != uuid.Nil
}

// DueAmount returns the unpaid remainder given the live allocation sum
func (e *LedgerEntry) DueAmount(allocated decimal.Decimal) decimal.Decimal {
	return e.TotalAmount.Sub(allocated)
}

func deriveRate(totalAmount, quantity decimal.Decimal) decimal.Decimal {
	return totalAmount.Div(quantity).Round(2)
}

func validateEntryAmounts(quantity, totalAmount decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	return nil
}
