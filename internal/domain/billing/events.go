package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeLedgerEntry = "LedgerEntry"
	AggregateTypePayment     = "Payment"
)

// Event type constants
const (
	EventTypeLedgerEntryCreated   = "LedgerEntryCreated"
	EventTypeLedgerEntryUpdated   = "LedgerEntryUpdated"
	EventTypePaymentCreated       = "PaymentCreated"
	EventTypePaymentStatusChanged = "PaymentStatusChanged"
	EventTypeAllocationsRebuilt   = "AllocationsRebuilt"
)

// LedgerEntryCreatedEvent is published when a new ledger entry is created
type LedgerEntryCreatedEvent struct {
	shared.BaseDomainEvent
	EntryID        uuid.UUID       `json:"entry_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	PaidToVendorID *uuid.UUID      `json:"paid_to_vendor_id,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewLedgerEntryCreatedEvent creates a new LedgerEntryCreatedEvent
func NewLedgerEntryCreatedEvent(entry *LedgerEntry) *LedgerEntryCreatedEvent {
	return &LedgerEntryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerEntryCreated, AggregateTypeLedgerEntry, entry.ID),
		EntryID:         entry.ID,
		ItemID:          entry.ItemID,
		PaidToVendorID:  entry.PaidToVendorID,
		TotalAmount:     entry.TotalAmount,
	}
}

// LedgerEntryUpdatedEvent is published when a ledger entry is updated
type LedgerEntryUpdatedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID       `json:"entry_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Rate        decimal.Decimal `json:"rate"`
}

// NewLedgerEntryUpdatedEvent creates a new LedgerEntryUpdatedEvent
func NewLedgerEntryUpdatedEvent(entry *LedgerEntry) *LedgerEntryUpdatedEvent {
	return &LedgerEntryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerEntryUpdated, AggregateTypeLedgerEntry, entry.ID),
		EntryID:         entry.ID,
		TotalAmount:     entry.TotalAmount,
		Rate:            entry.Rate,
	}
}

// PaymentCreatedEvent is published when a new payment is recorded
type PaymentCreatedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	VendorID  uuid.UUID       `json:"vendor_id"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      PaymentMode     `json:"mode"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent
func NewPaymentCreatedEvent(payment *Payment) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentCreated, AggregateTypePayment, payment.ID),
		PaymentID:       payment.ID,
		VendorID:        payment.VendorID,
		Amount:          payment.Amount,
		Mode:            payment.Mode,
	}
}

// PaymentStatusChangedEvent is published when a payment's allocation
// status changes
type PaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID        `json:"payment_id"`
	OldStatus AllocationStatus `json:"old_status"`
	NewStatus AllocationStatus `json:"new_status"`
}

// NewPaymentStatusChangedEvent creates a new PaymentStatusChangedEvent
func NewPaymentStatusChangedEvent(payment *Payment, oldStatus, newStatus AllocationStatus) *PaymentStatusChangedEvent {
	return &PaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentStatusChanged, AggregateTypePayment, payment.ID),
		PaymentID:       payment.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
