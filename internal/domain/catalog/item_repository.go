package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByNormalizedName finds an item by its normalized dedup key
	FindByNormalizedName(ctx context.Context, normalizedName string) (*Item, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// FindByType finds items by classification
	FindByType(ctx context.Context, itemType ItemType, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByNormalizedName checks if an item with the given normalized name exists
	ExistsByNormalizedName(ctx context.Context, normalizedName string) (bool, error)
}
