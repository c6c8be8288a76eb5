package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/application/worklog"
)

// WorkLogHandler handles daily site work log HTTP requests, including the
// two-step media upload flow (presigned URL, then attach).
type WorkLogHandler struct {
	BaseHandler
	workLogService *worklog.WorkLogService
}

// NewWorkLogHandler creates a new work log handler
func NewWorkLogHandler(workLogService *worklog.WorkLogService) *WorkLogHandler {
	return &WorkLogHandler{
		workLogService: workLogService,
	}
}

// Create records a daily work log entry for the authenticated user.
// POST /api/v1/worklogs
func (h *WorkLogHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req worklog.CreateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.workLogService.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, log)
}

// GetByID retrieves a work log with its media attachments.
// GET /api/v1/worklogs/:id
func (h *WorkLogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid work log ID")
		return
	}

	log, err := h.workLogService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, log)
}

// List returns a paginated list of work logs, optionally bounded by date.
// GET /api/v1/worklogs
func (h *WorkLogHandler) List(c *gin.Context) {
	var filter worklog.WorkLogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.workLogService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.WorkLogs, result.Total, result.Page, result.PageSize)
}

// Update modifies a work log's date or description.
// PUT /api/v1/worklogs/:id
func (h *WorkLogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid work log ID")
		return
	}

	var req worklog.UpdateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.workLogService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, log)
}

// Delete removes a work log and its attached media records.
// DELETE /api/v1/worklogs/:id
func (h *WorkLogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid work log ID")
		return
	}

	if err := h.workLogService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestMediaUpload issues a presigned upload URL for a photo or video.
// The client uploads directly to object storage, then attaches the key.
// POST /api/v1/worklogs/:id/media/request-upload
func (h *WorkLogHandler) RequestMediaUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid work log ID")
		return
	}

	var req worklog.RequestMediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	upload, err := h.workLogService.RequestMediaUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, upload)
}

// AttachMedia records an uploaded object against the work log.
// POST /api/v1/worklogs/:id/media
func (h *WorkLogHandler) AttachMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid work log ID")
		return
	}

	var req worklog.AttachMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	log, err := h.workLogService.AttachMedia(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, log)
}

// RemoveMedia detaches a media record and deletes the stored object.
// DELETE /api/v1/worklogs/:id/media/:mediaID
func (h *WorkLogHandler) RemoveMedia(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid work log ID")
		return
	}

	mediaID, err := uuid.Parse(c.Param("mediaID"))
	if err != nil {
		h.BadRequest(c, "Invalid media ID")
		return
	}

	if err := h.workLogService.RemoveMedia(c.Request.Context(), id, mediaID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
