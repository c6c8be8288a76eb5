package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/domain/shared/valueobject"
)

// PaymentMode represents how a payment was made
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeUPI          PaymentMode = "UPI"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeCheque       PaymentMode = "CHEQUE"
	PaymentModeOther        PaymentMode = "OTHER"
)

// IsValid checks if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeBankTransfer, PaymentModeCheque, PaymentModeOther:
		return true
	}
	return false
}

// AllocationStatus summarizes how much of a payment has been matched to
// ledger entries
type AllocationStatus string

const (
	AllocationStatusUnallocated    AllocationStatus = "UNALLOCATED"
	AllocationStatusPartial        AllocationStatus = "PARTIAL"
	AllocationStatusFullyAllocated AllocationStatus = "FULLY_ALLOCATED"
)

// DeriveAllocationStatus computes the allocation status from the live
// allocation sum. FULLY_ALLOCATED applies when the allocated total is
// strictly within tolerance of the payment amount; a full paisa short
// stays PARTIAL. UNALLOCATED only when exactly zero has been allocated.
func DeriveAllocationStatus(allocated, amount decimal.Decimal) AllocationStatus {
	if allocated.IsZero() {
		return AllocationStatusUnallocated
	}
	if valueobject.WithinTolerance(allocated, amount) {
		return AllocationStatusFullyAllocated
	}
	return AllocationStatusPartial
}

// Payment represents money paid out to a vendor, available to be matched
// against that vendor's ledger entries.
// It is the aggregate root for outgoing payments.
type Payment struct {
	shared.BaseAggregateRoot
	VendorID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	PaymentDate time.Time        `gorm:"type:date;not null;index"`
	Amount      decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	Mode        PaymentMode      `gorm:"type:varchar(20);not null;default:'CASH'"`
	ReferenceNo string           `gorm:"type:varchar(100)"`
	Remarks     string           `gorm:"type:text"`
	Status      AllocationStatus `gorm:"type:varchar(20);not null;default:'UNALLOCATED'"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment to a vendor
func NewPayment(vendorID uuid.UUID, paymentDate time.Time, amount decimal.Decimal, mode PaymentMode, referenceNo, remarks string) (*Payment, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Payment must reference a vendor")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODE", "Invalid payment mode")
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		PaymentDate:       paymentDate,
		Amount:            amount,
		Mode:              mode,
		ReferenceNo:       referenceNo,
		Remarks:           remarks,
		Status:            AllocationStatusUnallocated,
	}

	payment.AddDomainEvent(NewPaymentCreatedEvent(payment))

	return payment, nil
}

// RecomputeStatus derives and stores the allocation status from the live
// allocation sum for this payment
func (p *Payment) RecomputeStatus(allocated decimal.Decimal) {
	newStatus := DeriveAllocationStatus(allocated, p.Amount)
	if newStatus == p.Status {
		return
	}

	oldStatus := p.Status
	p.Status = newStatus
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentStatusChangedEvent(p, oldStatus, newStatus))
}

// UpdateDetails changes the descriptive fields of the payment. The amount
// is frozen once any allocation exists; callers verify that before
// changing it.
func (p *Payment) UpdateDetails(paymentDate time.Time, mode PaymentMode, referenceNo, remarks string) error {
	if !mode.IsValid() {
		return shared.NewDomainError("INVALID_MODE", "Invalid payment mode")
	}

	p.PaymentDate = paymentDate
	p.Mode = mode
	p.ReferenceNo = referenceNo
	p.Remarks = remarks
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemainingAmount returns the unallocated remainder given the live
// allocation sum
func (p *Payment) RemainingAmount(allocated decimal.Decimal) decimal.Decimal {
	return p.Amount.Sub(allocated)
}

// IsFullyAllocated returns true if the stored status is FULLY_ALLOCATED
func (p *Payment) IsFullyAllocated() bool {
	return p.Status == AllocationStatusFullyAllocated
}
