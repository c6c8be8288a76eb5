package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/domain/worklog"
	"gorm.io/gorm"
)

// GormWorkLogRepository implements WorkLogRepository using GORM. Media rows
// are owned by their work log and always load with it.
type GormWorkLogRepository struct {
	db *gorm.DB
}

// NewGormWorkLogRepository creates a new GormWorkLogRepository
func NewGormWorkLogRepository(db *gorm.DB) *GormWorkLogRepository {
	return &GormWorkLogRepository{db: db}
}

// FindByID finds a work log (with media) by its ID
func (r *GormWorkLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*worklog.DailyWorkLog, error) {
	var log worklog.DailyWorkLog
	if err := dbFor(ctx, r.db).
		Preload("Media").
		First(&log, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByDateRange finds work logs whose work date falls inside [from, to]
func (r *GormWorkLogRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]worklog.DailyWorkLog, error) {
	var logs []worklog.DailyWorkLog
	if err := dbFor(ctx, r.db).
		Preload("Media").
		Where("work_date >= ? AND work_date <= ?", from, to).
		Order("work_date DESC, created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindAll finds all work logs matching the filter, newest first
func (r *GormWorkLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]worklog.DailyWorkLog, error) {
	var logs []worklog.DailyWorkLog
	query := r.applyFilter(dbFor(ctx, r.db).Model(&worklog.DailyWorkLog{}).Preload("Media"), filter)

	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Save creates or updates a work log together with its media rows. Media
// removed from the aggregate are deleted so the stored set always mirrors
// the in-memory one.
func (r *GormWorkLogRepository) Save(ctx context.Context, log *worklog.DailyWorkLog) error {
	db := dbFor(ctx, r.db)
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(log).Error; err != nil {
		return err
	}

	keep := make([]uuid.UUID, 0, len(log.Media))
	for _, media := range log.Media {
		keep = append(keep, media.ID)
	}

	query := db.Where("work_log_id = ?", log.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&worklog.WorkMedia{}).Error
}

// Delete deletes a work log and its media rows
func (r *GormWorkLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFor(ctx, r.db)
	if err := db.Where("work_log_id = ?", id).Delete(&worklog.WorkMedia{}).Error; err != nil {
		return err
	}
	result := db.Delete(&worklog.DailyWorkLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts work logs matching the filter
func (r *GormWorkLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFor(ctx, r.db).Model(&worklog.DailyWorkLog{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter, sorting and pagination to the query
func (r *GormWorkLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, WorkLogSortFields, "work_date")
		sortOrder := ValidateSortOrder(filter.OrderDir)
		query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	} else {
		query = query.Order("work_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormWorkLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(description) LIKE LOWER(?)", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "from_date":
			query = query.Where("work_date >= ?", value)
		case "to_date":
			query = query.Where("work_date <= ?", value)
		}
	}

	return query
}
