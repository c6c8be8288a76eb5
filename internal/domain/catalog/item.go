package catalog

import (
	"strings"
	"time"

	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// ItemType classifies what a ledger entry is for
type ItemType string

const (
	ItemTypeMaterial ItemType = "MATERIAL" // Physical goods (cement, steel, sand)
	ItemTypeService  ItemType = "SERVICE"  // Labour and contracted work
)

// Item represents a material or service that ledger entries are recorded
// against. Items only label entries; they carry no pricing of their own.
type Item struct {
	shared.BaseAggregateRoot
	Name           string   `gorm:"type:varchar(200);not null"`
	NormalizedName string   `gorm:"type:varchar(200);not null;uniqueIndex"`
	Type           ItemType `gorm:"type:varchar(20);not null;default:'MATERIAL'"`
	Unit           string   `gorm:"type:varchar(50)"` // Default unit of measure (BAG, TON, CFT, ...)
	Category       string   `gorm:"type:varchar(100)"`
	Description    string   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(name string, itemType ItemType, unit, category, description string) (*Item, error) {
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if err := validateItemType(itemType); err != nil {
		return nil, err
	}

	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		NormalizedName:    partner.NormalizeName(name),
		Type:              itemType,
		Unit:              unit,
		Category:          category,
		Description:       description,
	}

	item.AddDomainEvent(NewItemCreatedEvent(item))

	return item, nil
}

// NewMaterialItem creates a new material item
func NewMaterialItem(name, unit string) (*Item, error) {
	return NewItem(name, ItemTypeMaterial, unit, "", "")
}

// NewServiceItem creates a new service item
func NewServiceItem(name string) (*Item, error) {
	return NewItem(name, ItemTypeService, "", "", "")
}

// Rename changes the item's display name and recomputes the normalized key
func (i *Item) Rename(name string) error {
	if err := validateItemName(name); err != nil {
		return err
	}

	i.Name = name
	i.NormalizedName = partner.NormalizeName(name)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewItemUpdatedEvent(i))

	return nil
}

// Update updates the item's descriptive fields
func (i *Item) Update(itemType ItemType, unit, category, description string) error {
	if err := validateItemType(itemType); err != nil {
		return err
	}

	i.Type = itemType
	i.Unit = unit
	i.Category = category
	i.Description = description
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewItemUpdatedEvent(i))

	return nil
}

// IsMaterial returns true if the item is a material
func (i *Item) IsMaterial() bool {
	return i.Type == ItemTypeMaterial
}

// IsService returns true if the item is a service
func (i *Item) IsService() bool {
	return i.Type == ItemTypeService
}

func validateItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}

func validateItemType(t ItemType) error {
	switch t {
	case ItemTypeMaterial, ItemTypeService:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid item type")
	}
}
