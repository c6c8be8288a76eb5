package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.LedgerEntry, error) {
	var entry billing.LedgerEntry
	if err := dbFor(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByIDs finds multiple ledger entries by their IDs
func (r *GormLedgerEntryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]billing.LedgerEntry, error) {
	if len(ids) == 0 {
		return []billing.LedgerEntry{}, nil
	}
	var entries []billing.LedgerEntry
	if err := dbFor(ctx, r.db).Where("id IN ?", ids).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByVendor finds all entries charged against a vendor, oldest first so
// that callers walking them in order see chronological FIFO order
func (r *GormLedgerEntryRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]billing.LedgerEntry, error) {
	var entries []billing.LedgerEntry
	if err := dbFor(ctx, r.db).
		Where("paid_to_vendor_id = ?", vendorID).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds all entries matching the filter
func (r *GormLedgerEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.LedgerEntry, error) {
	var entries []billing.LedgerEntry
	query := r.applyFilter(dbFor(ctx, r.db).Model(&billing.LedgerEntry{}), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates a ledger entry
func (r *GormLedgerEntryRepository) Save(ctx context.Context, entry *billing.LedgerEntry) error {
	return dbFor(ctx, r.db).Save(entry).Error
}

// SaveWithLock updates a ledger entry guarded by an optimistic version
// check. The entry carries the already incremented version; the update only
// lands if the stored row still has the version the caller read.
func (r *GormLedgerEntryRepository) SaveWithLock(ctx context.Context, entry *billing.LedgerEntry, expectedVersion int) error {
	result := dbFor(ctx, r.db).Model(&billing.LedgerEntry{}).
		Where("id = ? AND version = ?", entry.ID, expectedVersion).
		Select("*").
		Omit("created_at").
		Updates(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a ledger entry
func (r *GormLedgerEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&billing.LedgerEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts entries matching the filter
func (r *GormLedgerEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(dbFor(ctx, r.db).Model(&billing.LedgerEntry{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalAmount sums total_amount over all entries
func (r *GormLedgerEntryRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbFor(ctx, r.db).Model(&billing.LedgerEntry{}).
		Select("SUM(total_amount)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// applyFilter applies filter, sorting and pagination to the query
func (r *GormLedgerEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, LedgerEntrySortFields, "entry_date")
		sortOrder := ValidateSortOrder(filter.OrderDir)
		query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))
	} else {
		query = query.Order("entry_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLedgerEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(remarks) LIKE LOWER(?)", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "paid_to_vendor_id":
			query = query.Where("paid_to_vendor_id = ?", value)
		case "source_vendor_id":
			query = query.Where("source_vendor_id = ?", value)
		case "item_id":
			query = query.Where("item_id = ?", value)
		case "from_date":
			query = query.Where("entry_date >= ?", value)
		case "to_date":
			query = query.Where("entry_date <= ?", value)
		}
	}

	return query
}
