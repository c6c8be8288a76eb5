package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/application/billing"
)

// PaymentHandler handles payment HTTP requests, including interactive
// allocation of a payment across ledger entries.
type PaymentHandler struct {
	BaseHandler
	paymentService    *billing.PaymentService
	allocationService *billing.AllocationAppService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	paymentService *billing.PaymentService,
	allocationService *billing.AllocationAppService,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService:    paymentService,
		allocationService: allocationService,
	}
}

// Create records a payment made to a vendor.
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req billing.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// GetByID retrieves a payment with its allocation totals.
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// GetAllocations lists the allocations recorded against a payment.
// GET /api/v1/payments/:id/allocations
func (h *PaymentHandler) GetAllocations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	allocations, err := h.paymentService.GetAllocations(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, allocations)
}

// List returns a paginated, filterable list of payments.
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	var filter billing.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// Update modifies a payment. Amount and vendor are frozen once the payment
// has allocations; only mode, reference and remarks may change.
// PUT /api/v1/payments/:id
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req billing.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// Delete removes a payment. Payments with allocations are rejected.
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// PreviewAllocations lists the payment's remaining amount and the vendor's
// open entries so the operator can choose allocation targets.
// GET /api/v1/payments/:id/allocations/preview
func (h *PaymentHandler) PreviewAllocations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	result, err := h.allocationService.Preview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Allocate distributes a payment across one or more ledger entries of the
// same vendor. Allocations exceeding the payment amount are rejected with
// the offending figures in the response body.
// POST /api/v1/payments/:id/allocations
func (h *PaymentHandler) Allocate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req billing.AllocatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.allocationService.Allocate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
