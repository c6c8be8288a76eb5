package worklog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// MediaType classifies an attached media file
type MediaType string

const (
	MediaTypePhoto MediaType = "PHOTO"
	MediaTypeVideo MediaType = "VIDEO"
)

// IsValid returns true if the media type is known
func (m MediaType) IsValid() bool {
	return m == MediaTypePhoto || m == MediaTypeVideo
}

// WorkMedia is a media attachment on a daily work log. The binary lives in
// object storage; only the URL is kept here.
type WorkMedia struct {
	shared.BaseEntity
	WorkLogID uuid.UUID `gorm:"type:uuid;index;not null"`
	Type      MediaType `gorm:"type:varchar(10);not null"`
	URL       string    `gorm:"type:varchar(500);not null"`
	Caption   string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (WorkMedia) TableName() string {
	return "work_media"
}

// DailyWorkLog records what happened on site on a given day
type DailyWorkLog struct {
	shared.BaseAggregateRoot
	WorkDate    time.Time   `gorm:"type:date;index;not null"`
	Description string      `gorm:"type:text;not null"`
	CreatedBy   uuid.UUID   `gorm:"type:uuid;not null"`
	Media       []WorkMedia `gorm:"foreignKey:WorkLogID;constraint:OnDelete:CASCADE"`
}

// NewDailyWorkLog creates a work log for a given day
func NewDailyWorkLog(workDate time.Time, description string, createdBy uuid.UUID) (*DailyWorkLog, error) {
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Creator is required")
	}
	if workDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Work date is required")
	}

	log := &DailyWorkLog{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WorkDate:          workDate,
		Description:       strings.TrimSpace(description),
		CreatedBy:         createdBy,
		Media:             make([]WorkMedia, 0),
	}

	log.AddDomainEvent(NewWorkLogCreatedEvent(log))

	return log, nil
}

// UpdateDescription replaces the log's description
func (w *DailyWorkLog) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	w.Description = strings.TrimSpace(description)
	w.Touch()
	w.IncrementVersion()

	w.AddDomainEvent(NewWorkLogUpdatedEvent(w))

	return nil
}

// AttachMedia adds a media attachment to the log
func (w *DailyWorkLog) AttachMedia(mediaType MediaType, url, caption string) (*WorkMedia, error) {
	if !mediaType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MEDIA_TYPE", "Media type must be PHOTO or VIDEO")
	}
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Media URL is required")
	}
	if len(url) > 500 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Media URL cannot exceed 500 characters")
	}

	media := WorkMedia{
		BaseEntity: shared.NewBaseEntity(),
		WorkLogID:  w.ID,
		Type:       mediaType,
		URL:        strings.TrimSpace(url),
		Caption:    strings.TrimSpace(caption),
	}

	w.Media = append(w.Media, media)
	w.Touch()
	w.IncrementVersion()

	w.AddDomainEvent(NewWorkMediaAttachedEvent(w, &media))

	return &w.Media[len(w.Media)-1], nil
}

// RemoveMedia removes a media attachment by its ID
func (w *DailyWorkLog) RemoveMedia(mediaID uuid.UUID) error {
	for i, media := range w.Media {
		if media.ID == mediaID {
			w.Media = append(w.Media[:i], w.Media[i+1:]...)
			w.Touch()
			w.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("MEDIA_NOT_FOUND", "Media attachment not found")
}

// TableName returns the table name for GORM
func (DailyWorkLog) TableName() string {
	return "daily_work_logs"
}

func validateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_INPUT", "Description cannot be empty")
	}
	if len(description) > 5000 {
		return shared.NewDomainError("INVALID_INPUT", "Description cannot exceed 5000 characters")
	}
	return nil
}
