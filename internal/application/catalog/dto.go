package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/catalog"
)

// CreateItemRequest is the request to create a catalog item
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Type        string `json:"type" binding:"required,oneof=MATERIAL SERVICE"`
	Unit        string `json:"unit" binding:"max=20"`
	Category    string `json:"category" binding:"max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateItemRequest is the request to update an item; nil fields are untouched
type UpdateItemRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// ItemListFilter defines filtering options for listing items
type ItemListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=MATERIAL SERVICE"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ItemResponse is the API representation of a catalog item
type ItemResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	Type           string    `json:"type"`
	Unit           string    `json:"unit,omitempty"`
	Category       string    `json:"category,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToItemResponse converts an item aggregate to its API representation
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		NormalizedName: item.NormalizedName,
		Type:           string(item.Type),
		Unit:           item.Unit,
		Category:       item.Category,
		Description:    item.Description,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}
