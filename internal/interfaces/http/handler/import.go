package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitekhata/backend/internal/application/importer"
	"github.com/sitekhata/backend/internal/interfaces/http/dto"
)

// Maximum upload size for ledger workbooks (10MB)
const maxImportFileSize = 10 * 1024 * 1024

// ImportHandler handles Excel ledger workbook imports
type ImportHandler struct {
	BaseHandler
	importService *importer.LedgerImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *importer.LedgerImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Import ingests an .xlsx workbook with entry and payment sheets. Rows
// already present are skipped, new vendors and items are created from entry
// rows, and a confirmed reconciliation runs at the end. The whole import is
// one transaction.
// POST /api/v1/import/ledger
func (h *ImportHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeValidation, "file exceeds maximum size of 10MB")
		return
	}

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeValidation, "file must be an .xlsx workbook")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
