package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/billing"
)

// CreateLedgerEntryRequest is the request to record an expenditure
type CreateLedgerEntryRequest struct {
	EntryDate      time.Time       `json:"entry_date" binding:"required"`
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	SourceVendorID *uuid.UUID      `json:"source_vendor_id"`
	PaidToVendorID *uuid.UUID      `json:"paid_to_vendor_id"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Unit           string          `json:"unit" binding:"max=50"`
	TotalAmount    decimal.Decimal `json:"total_amount" binding:"required"`
	Remarks        string          `json:"remarks" binding:"max=1000"`
}

// UpdateLedgerEntryRequest is the request to update an entry; nil fields
// are untouched. Quantity and TotalAmount are rejected once the entry has
// allocations.
type UpdateLedgerEntryRequest struct {
	EntryDate      *time.Time       `json:"entry_date"`
	ItemID         *uuid.UUID       `json:"item_id"`
	SourceVendorID *uuid.UUID       `json:"source_vendor_id"`
	PaidToVendorID *uuid.UUID       `json:"paid_to_vendor_id"`
	Quantity       *decimal.Decimal `json:"quantity"`
	Unit           *string          `json:"unit" binding:"omitempty,max=50"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	Remarks        *string          `json:"remarks" binding:"omitempty,max=1000"`
}

// LedgerEntryListFilter defines filtering options for listing entries
type LedgerEntryListFilter struct {
	VendorID *uuid.UUID `form:"vendor_id"`
	ItemID   *uuid.UUID `form:"item_id"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
}

// LedgerEntryResponse is the API representation of a ledger entry together
// with its live allocation figures
type LedgerEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	EntryDate       time.Time       `json:"entry_date"`
	ItemID          uuid.UUID       `json:"item_id"`
	SourceVendorID  *uuid.UUID      `json:"source_vendor_id,omitempty"`
	PaidToVendorID  *uuid.UUID      `json:"paid_to_vendor_id,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Rate            decimal.Decimal `json:"rate"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	Remarks         string          `json:"remarks,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToLedgerEntryResponse converts an entry and its allocation sum
func ToLedgerEntryResponse(entry *billing.LedgerEntry, allocated decimal.Decimal) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              entry.ID,
		EntryDate:       entry.EntryDate,
		ItemID:          entry.ItemID,
		SourceVendorID:  entry.SourceVendorID,
		PaidToVendorID:  entry.PaidToVendorID,
		Quantity:        entry.Quantity,
		Unit:            entry.Unit,
		TotalAmount:     entry.TotalAmount,
		Rate:            entry.Rate,
		AllocatedAmount: allocated,
		DueAmount:       entry.DueAmount(allocated),
		Remarks:         entry.Remarks,
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
	}
}

// CreatePaymentRequest is the request to record a vendor payment
type CreatePaymentRequest struct {
	VendorID    uuid.UUID       `json:"vendor_id" binding:"required"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Mode        string          `json:"mode" binding:"required,oneof=CASH UPI BANK_TRANSFER CHEQUE OTHER"`
	ReferenceNo string          `json:"reference_no" binding:"max=100"`
	Remarks     string          `json:"remarks" binding:"max=1000"`
}

// UpdatePaymentRequest updates a payment's descriptive fields
type UpdatePaymentRequest struct {
	PaymentDate *time.Time `json:"payment_date"`
	Mode        *string    `json:"mode" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CHEQUE OTHER"`
	ReferenceNo *string    `json:"reference_no" binding:"omitempty,max=100"`
	Remarks     *string    `json:"remarks" binding:"omitempty,max=1000"`
}

// PaymentListFilter defines filtering options for listing payments
type PaymentListFilter struct {
	VendorID *uuid.UUID `form:"vendor_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=UNALLOCATED PARTIAL FULLY_ALLOCATED"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir"`
}

// PaymentResponse is the API representation of a payment together with its
// live allocation figures
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	PaymentDate     time.Time       `json:"payment_date"`
	Amount          decimal.Decimal `json:"amount"`
	Mode            string          `json:"mode"`
	ReferenceNo     string          `json:"reference_no,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
	Status          string          `json:"status"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToPaymentResponse converts a payment and its allocation sum
func ToPaymentResponse(payment *billing.Payment, allocated decimal.Decimal) PaymentResponse {
	return PaymentResponse{
		ID:              payment.ID,
		VendorID:        payment.VendorID,
		PaymentDate:     payment.PaymentDate,
		Amount:          payment.Amount,
		Mode:            string(payment.Mode),
		ReferenceNo:     payment.ReferenceNo,
		Remarks:         payment.Remarks,
		Status:          string(payment.Status),
		AllocatedAmount: allocated,
		RemainingAmount: payment.RemainingAmount(allocated),
		CreatedAt:       payment.CreatedAt,
		UpdatedAt:       payment.UpdatedAt,
	}
}

// AllocationLineRequest is one line of an interactive allocation batch
type AllocationLineRequest struct {
	EntryID uuid.UUID       `json:"entry_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// AllocatePaymentRequest is the interactive allocation batch for one payment
type AllocatePaymentRequest struct {
	Allocations []AllocationLineRequest `json:"allocations" binding:"required,min=1,dive"`
}

// AllocationResponse is one persisted allocation row
type AllocationResponse struct {
	ID        uuid.UUID       `json:"id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	EntryID   uuid.UUID       `json:"entry_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToAllocationResponse converts an allocation row
func ToAllocationResponse(allocation *billing.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:        allocation.ID,
		PaymentID: allocation.PaymentID,
		EntryID:   allocation.EntryID,
		Amount:    allocation.Amount,
		CreatedAt: allocation.CreatedAt,
	}
}

// AllocatePaymentResponse is the outcome of an interactive allocation batch
type AllocatePaymentResponse struct {
	PaymentID       uuid.UUID            `json:"payment_id"`
	Allocations     []AllocationResponse `json:"allocations"`
	AllocatedAmount decimal.Decimal      `json:"allocated_amount"`
	RemainingAmount decimal.Decimal      `json:"remaining_amount"`
	Status          string               `json:"status"`
}

// AllocationPreviewResponse lists a payment's remaining amount alongside
// the payee vendor's open entries, oldest first, so the operator can pick
// allocation targets before committing a batch
type AllocationPreviewResponse struct {
	PaymentID       uuid.UUID             `json:"payment_id"`
	VendorID        uuid.UUID             `json:"vendor_id"`
	Amount          decimal.Decimal       `json:"amount"`
	AllocatedAmount decimal.Decimal       `json:"allocated_amount"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	OpenEntries     []LedgerEntryResponse `json:"open_entries"`
}

// ReconciliationResult summarizes a full FIFO rebuild run
type ReconciliationResult struct {
	VendorsProcessed int             `json:"vendors_processed"`
	VendorsSkipped   int             `json:"vendors_skipped"`
	AllocationsMade  int             `json:"allocations_made"`
	TotalAllocated   decimal.Decimal `json:"total_allocated"`
	StartedAt        time.Time       `json:"started_at"`
	FinishedAt       time.Time       `json:"finished_at"`
}
