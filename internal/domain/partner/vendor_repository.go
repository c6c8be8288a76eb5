package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindByNormalizedName finds a vendor by its normalized dedup key
	FindByNormalizedName(ctx context.Context, normalizedName string) (*Vendor, error)

	// FindAll finds all vendors matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// FindByIDs finds multiple vendors by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Vendor, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error

	// Delete deletes a vendor
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts vendors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByNormalizedName checks if a vendor with the given normalized name exists
	ExistsByNormalizedName(ctx context.Context, normalizedName string) (bool, error)
}
