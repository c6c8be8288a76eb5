package worklog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/worklog"
)

// CreateWorkLogRequest represents a request to create a daily work log
type CreateWorkLogRequest struct {
	WorkDate    time.Time `json:"work_date" binding:"required" time_format:"2006-01-02"`
	Description string    `json:"description" binding:"required"`
}

// UpdateWorkLogRequest represents a request to update a work log
type UpdateWorkLogRequest struct {
	Description *string `json:"description"`
}

// WorkLogListFilter represents filter parameters for work log queries
type WorkLogListFilter struct {
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// RequestMediaUploadRequest asks for a presigned upload slot for a media file
type RequestMediaUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// MediaUploadResponse carries the presigned upload URL and the storage key
// the client must echo back when confirming the attachment
type MediaUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// AttachMediaRequest confirms an uploaded file as work log media
type AttachMediaRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
	Type       string `json:"type" binding:"required,oneof=PHOTO VIDEO"`
	Caption    string `json:"caption" binding:"max=500"`
}

// WorkMediaResponse represents a media attachment in API responses
type WorkMediaResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Caption     string    `json:"caption,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkLogResponse represents a work log in API responses
type WorkLogResponse struct {
	ID          uuid.UUID           `json:"id"`
	WorkDate    time.Time           `json:"work_date"`
	Description string              `json:"description"`
	CreatedBy   uuid.UUID           `json:"created_by"`
	Media       []WorkMediaResponse `json:"media"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToWorkLogResponse converts a domain work log to a response DTO
func ToWorkLogResponse(log *worklog.DailyWorkLog) *WorkLogResponse {
	media := make([]WorkMediaResponse, 0, len(log.Media))
	for i := range log.Media {
		m := &log.Media[i]
		media = append(media, WorkMediaResponse{
			ID:        m.ID,
			Type:      string(m.Type),
			URL:       m.URL,
			Caption:   m.Caption,
			CreatedAt: m.CreatedAt,
		})
	}

	return &WorkLogResponse{
		ID:          log.ID,
		WorkDate:    log.WorkDate,
		Description: log.Description,
		CreatedBy:   log.CreatedBy,
		Media:       media,
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}
}

// WorkLogListResponse represents a paginated work log list
type WorkLogListResponse struct {
	WorkLogs []*WorkLogResponse `json:"work_logs"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
