package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// Allocation links a specific amount of one payment to one ledger entry.
// Rows are immutable once created; the batch reconciliation pass replaces
// them wholesale rather than editing them.
type Allocation struct {
	shared.BaseEntity
	PaymentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Allocation) TableName() string {
	return "payment_allocations"
}

// NewAllocation creates a new allocation row
func NewAllocation(paymentID, entryID uuid.UUID, amount decimal.Decimal) (*Allocation, error) {
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Allocation must reference a payment")
	}
	if entryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Allocation must reference an entry")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}

	return &Allocation{
		BaseEntity: shared.NewBaseEntity(),
		PaymentID:  paymentID,
		EntryID:    entryID,
		Amount:     amount,
	}, nil
}
