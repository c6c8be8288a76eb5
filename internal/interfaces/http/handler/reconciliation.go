package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sitekhata/backend/internal/application/billing"
)

// ReconciliationHandler handles batch FIFO reconciliation requests
type ReconciliationHandler struct {
	BaseHandler
	reconciliationService *billing.ReconciliationService
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconciliationService *billing.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

// Run rebuilds allocations for every vendor oldest-first. Without
// confirm=true it is a dry run: the result is computed and returned but
// nothing is persisted.
// POST /api/v1/reconciliation/run?confirm=true
func (h *ReconciliationHandler) Run(c *gin.Context) {
	confirm, err := strconv.ParseBool(c.DefaultQuery("confirm", "false"))
	if err != nil {
		h.BadRequest(c, "confirm must be true or false")
		return
	}

	result, runErr := h.reconciliationService.Run(c.Request.Context(), confirm)
	if runErr != nil {
		h.HandleError(c, runErr)
		return
	}

	h.Success(c, result)
}
