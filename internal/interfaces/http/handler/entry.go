package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/application/billing"
)

// LedgerEntryHandler handles ledger entry HTTP requests
type LedgerEntryHandler struct {
	BaseHandler
	entryService *billing.LedgerEntryService
}

// NewLedgerEntryHandler creates a new ledger entry handler
func NewLedgerEntryHandler(entryService *billing.LedgerEntryService) *LedgerEntryHandler {
	return &LedgerEntryHandler{
		entryService: entryService,
	}
}

// Create records a new expense line in the ledger.
// POST /api/v1/entries
func (h *LedgerEntryHandler) Create(c *gin.Context) {
	var req billing.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetByID retrieves a ledger entry with its allocation totals.
// GET /api/v1/entries/:id
func (h *LedgerEntryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.entryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// List returns a paginated, filterable list of ledger entries.
// GET /api/v1/entries
func (h *LedgerEntryHandler) List(c *gin.Context) {
	var filter billing.LedgerEntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	entries, total, err := h.entryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// Update modifies a ledger entry. Financial fields are frozen once any
// payment has been allocated against the entry; only remarks may change.
// PUT /api/v1/entries/:id
func (h *LedgerEntryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	var req billing.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// Delete removes a ledger entry. Entries with allocations are rejected.
// DELETE /api/v1/entries/:id
func (h *LedgerEntryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
