package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/catalog"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
	}
}

// Create creates a new catalog item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	normalized := partner.NormalizeName(req.Name)
	exists, err := s.itemRepo.ExistsByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this name already exists")
	}

	item, err := catalog.NewItem(req.Name, catalog.ItemType(req.Type), req.Unit, req.Category, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetOrCreateByName returns the item whose normalized name matches, creating
// a material item on the fly when none exists. Used by spreadsheet import.
func (s *ItemService) GetOrCreateByName(ctx context.Context, name, unit string) (*ItemResponse, error) {
	normalized := partner.NormalizeName(name)
	item, err := s.itemRepo.FindByNormalizedName(ctx, normalized)
	if err == nil {
		response := ToItemResponse(item)
		return &response, nil
	}

	item, err = catalog.NewMaterialItem(name, unit)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToItemResponses(items), total, nil
}

// Update updates an item
func (s *ItemService) Update(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != item.Name {
		normalized := partner.NormalizeName(*req.Name)
		if normalized != item.NormalizedName {
			exists, err := s.itemRepo.ExistsByNormalizedName(ctx, normalized)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this name already exists")
			}
		}
		if err := item.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Unit != nil || req.Category != nil || req.Description != nil {
		unit := item.Unit
		category := item.Category
		description := item.Description
		if req.Unit != nil {
			unit = *req.Unit
		}
		if req.Category != nil {
			category = *req.Category
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := item.Update(item.Type, unit, category, description); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete deletes an item
func (s *ItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return err
	}

	return s.itemRepo.Delete(ctx, itemID)
}
