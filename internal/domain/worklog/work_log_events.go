package worklog

import (
	"time"

	"github.com/sitekhata/backend/internal/domain/shared"
)

// Aggregate type constant for DailyWorkLog
const AggregateTypeWorkLog = "DailyWorkLog"

// Work log domain event types
const (
	EventTypeWorkLogCreated    = "WorkLogCreated"
	EventTypeWorkLogUpdated    = "WorkLogUpdated"
	EventTypeWorkMediaAttached = "WorkMediaAttached"
)

// WorkLogCreatedEvent is published when a daily work log is created
type WorkLogCreatedEvent struct {
	shared.BaseDomainEvent
	WorkDate time.Time `json:"work_date"`
}

// NewWorkLogCreatedEvent creates a new WorkLogCreatedEvent
func NewWorkLogCreatedEvent(log *DailyWorkLog) *WorkLogCreatedEvent {
	return &WorkLogCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkLogCreated, AggregateTypeWorkLog, log.ID),
		WorkDate:        log.WorkDate,
	}
}

// WorkLogUpdatedEvent is published when a work log's description changes
type WorkLogUpdatedEvent struct {
	shared.BaseDomainEvent
	WorkDate time.Time `json:"work_date"`
}

// NewWorkLogUpdatedEvent creates a new WorkLogUpdatedEvent
func NewWorkLogUpdatedEvent(log *DailyWorkLog) *WorkLogUpdatedEvent {
	return &WorkLogUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkLogUpdated, AggregateTypeWorkLog, log.ID),
		WorkDate:        log.WorkDate,
	}
}

// WorkMediaAttachedEvent is published when media is attached to a work log
type WorkMediaAttachedEvent struct {
	shared.BaseDomainEvent
	MediaType MediaType `json:"media_type"`
	URL       string    `json:"url"`
}

// NewWorkMediaAttachedEvent creates a new WorkMediaAttachedEvent
func NewWorkMediaAttachedEvent(log *DailyWorkLog, media *WorkMedia) *WorkMediaAttachedEvent {
	return &WorkMediaAttachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWorkMediaAttached, AggregateTypeWorkLog, log.ID),
		MediaType:       media.Type,
		URL:             media.URL,
	}
}
