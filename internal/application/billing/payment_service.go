package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// PaymentService handles vendor payment operations
type PaymentService struct {
	paymentRepo    billing.PaymentRepository
	allocationRepo billing.AllocationRepository
	vendorRepo     partner.VendorRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	allocationRepo billing.AllocationRepository,
	vendorRepo partner.VendorRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		allocationRepo: allocationRepo,
		vendorRepo:     vendorRepo,
	}
}

// Create records a new payment to a vendor
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, shared.NewDomainError("VENDOR_NOT_FOUND", "Referenced vendor does not exist")
	}

	payment, err := billing.NewPayment(req.VendorID, req.PaymentDate, req.Amount,
		billing.PaymentMode(req.Mode), req.ReferenceNo, req.Remarks)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, decimal.Zero)
	return &response, nil
}

// GetByID retrieves a payment together with its live allocation sum
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	allocated, err := s.allocationRepo.SumAllocatedForPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, allocated)
	return &response, nil
}

// GetAllocations returns the allocation rows for a payment
func (s *PaymentService) GetAllocations(ctx context.Context, paymentID uuid.UUID) ([]AllocationResponse, error) {
	if _, err := s.paymentRepo.FindByID(ctx, paymentID); err != nil {
		return nil, err
	}

	allocations, err := s.allocationRepo.FindByPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	responses := make([]AllocationResponse, len(allocations))
	for i := range allocations {
		responses[i] = ToAllocationResponse(&allocations[i])
	}
	return responses, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "payment_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		allocated, err := s.allocationRepo.SumAllocatedForPayment(ctx, payments[i].ID)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = ToPaymentResponse(&payments[i], allocated)
	}

	return responses, total, nil
}

// Update updates a payment's descriptive fields. The amount is never
// editable here; correct it by deleting and re-recording the payment.
func (s *PaymentService) Update(ctx context.Context, paymentID uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	paymentDate := payment.PaymentDate
	mode := payment.Mode
	referenceNo := payment.ReferenceNo
	remarks := payment.Remarks

	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}
	if req.Mode != nil {
		mode = billing.PaymentMode(*req.Mode)
	}
	if req.ReferenceNo != nil {
		referenceNo = *req.ReferenceNo
	}
	if req.Remarks != nil {
		remarks = *req.Remarks
	}

	if err := payment.UpdateDetails(paymentDate, mode, referenceNo, remarks); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	allocated, err := s.allocationRepo.SumAllocatedForPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, allocated)
	return &response, nil
}

// Delete deletes a payment. Rejected while allocations reference it.
func (s *PaymentService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	if _, err := s.paymentRepo.FindByID(ctx, paymentID); err != nil {
		return err
	}

	count, err := s.allocationRepo.CountForPayment(ctx, paymentID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrPaymentAllocated
	}

	return s.paymentRepo.Delete(ctx, paymentID)
}
