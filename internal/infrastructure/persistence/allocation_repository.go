package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM.
// Allocation rows are append-only; the batch reconciliation pass replaces
// them wholesale instead of editing individual rows.
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByPayment finds all allocations for a payment
func (r *GormAllocationRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) ([]billing.Allocation, error) {
	var allocations []billing.Allocation
	if err := dbFor(ctx, r.db).
		Where("payment_id = ?", paymentID).
		Order("created_at ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindByEntry finds all allocations for a ledger entry
func (r *GormAllocationRepository) FindByEntry(ctx context.Context, entryID uuid.UUID) ([]billing.Allocation, error) {
	var allocations []billing.Allocation
	if err := dbFor(ctx, r.db).
		Where("entry_id = ?", entryID).
		Order("created_at ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// Save creates an allocation row
func (r *GormAllocationRepository) Save(ctx context.Context, allocation *billing.Allocation) error {
	return dbFor(ctx, r.db).Create(allocation).Error
}

// SaveBatch creates multiple allocation rows
func (r *GormAllocationRepository) SaveBatch(ctx context.Context, allocations []*billing.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}
	return dbFor(ctx, r.db).CreateInBatches(allocations, 100).Error
}

// DeleteAll deletes every allocation row (full reconciliation rebuild)
func (r *GormAllocationRepository) DeleteAll(ctx context.Context) error {
	return dbFor(ctx, r.db).
		Where("1 = 1").
		Delete(&billing.Allocation{}).Error
}

// DeleteByVendor deletes all allocations whose payment belongs to the vendor
func (r *GormAllocationRepository) DeleteByVendor(ctx context.Context, vendorID uuid.UUID) error {
	return dbFor(ctx, r.db).
		Where("payment_id IN (?)",
			dbFor(ctx, r.db).Model(&billing.Payment{}).Select("id").Where("vendor_id = ?", vendorID)).
		Delete(&billing.Allocation{}).Error
}

// SumAllocatedForPayment returns the live allocation sum for a payment
func (r *GormAllocationRepository) SumAllocatedForPayment(ctx context.Context, paymentID uuid.UUID) (decimal.Decimal, error) {
	return r.sumWhere(ctx, "payment_id = ?", paymentID)
}

// SumAllocatedForEntry returns the live allocation sum for an entry
func (r *GormAllocationRepository) SumAllocatedForEntry(ctx context.Context, entryID uuid.UUID) (decimal.Decimal, error) {
	return r.sumWhere(ctx, "entry_id = ?", entryID)
}

// SumAllocatedForEntries returns live allocation sums keyed by entry ID.
// Entries with no allocations are absent from the map.
func (r *GormAllocationRepository) SumAllocatedForEntries(ctx context.Context, entryIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	sums := make(map[uuid.UUID]decimal.Decimal, len(entryIDs))
	if len(entryIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		EntryID uuid.UUID
		Total   decimal.Decimal
	}
	if err := dbFor(ctx, r.db).Model(&billing.Allocation{}).
		Select("entry_id, SUM(amount) AS total").
		Where("entry_id IN ?", entryIDs).
		Group("entry_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		sums[row.EntryID] = row.Total
	}
	return sums, nil
}

// CountForPayment counts allocation rows referencing a payment
func (r *GormAllocationRepository) CountForPayment(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "payment_id = ?", paymentID)
}

// CountForEntry counts allocation rows referencing an entry
func (r *GormAllocationRepository) CountForEntry(ctx context.Context, entryID uuid.UUID) (int64, error) {
	return r.countWhere(ctx, "entry_id = ?", entryID)
}

// SumAllocated sums amount over all allocation rows
func (r *GormAllocationRepository) SumAllocated(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbFor(ctx, r.db).Model(&billing.Allocation{}).
		Select("SUM(amount)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormAllocationRepository) sumWhere(ctx context.Context, cond string, arg interface{}) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := dbFor(ctx, r.db).Model(&billing.Allocation{}).
		Select("SUM(amount)").
		Where(cond, arg).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *GormAllocationRepository) countWhere(ctx context.Context, cond string, arg interface{}) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).Model(&billing.Allocation{}).
		Where(cond, arg).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
