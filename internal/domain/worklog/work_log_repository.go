package worklog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// WorkLogRepository defines the interface for daily work log persistence
type WorkLogRepository interface {
	// FindByID finds a work log (with media) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DailyWorkLog, error)

	// FindByDateRange finds work logs whose work date falls inside [from, to]
	FindByDateRange(ctx context.Context, from, to time.Time) ([]DailyWorkLog, error)

	// FindAll finds all work logs matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]DailyWorkLog, error)

	// Save creates or updates a work log together with its media rows
	Save(ctx context.Context, log *DailyWorkLog) error

	// Delete deletes a work log and its media rows
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts work logs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
