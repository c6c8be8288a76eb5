package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/partner"
)

// CreateVendorRequest is the request to create a vendor
type CreateVendorRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200"`
	ContactDetails string `json:"contact_details" binding:"max=500"`
	TaxID          string `json:"tax_id" binding:"max=50"`
	Notes          string `json:"notes" binding:"max=1000"`
}

// UpdateVendorRequest is the request to update a vendor; nil fields are untouched
type UpdateVendorRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactDetails *string `json:"contact_details" binding:"omitempty,max=500"`
	TaxID          *string `json:"tax_id" binding:"omitempty,max=50"`
	Notes          *string `json:"notes" binding:"omitempty,max=1000"`
}

// VendorListFilter defines filtering options for listing vendors
type VendorListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// VendorResponse is the API representation of a vendor
type VendorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
	ContactDetails string    `json:"contact_details,omitempty"`
	TaxID          string    `json:"tax_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToVendorResponse converts a vendor aggregate to its API representation
func ToVendorResponse(vendor *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:             vendor.ID,
		Name:           vendor.Name,
		NormalizedName: vendor.NormalizedName,
		ContactDetails: vendor.ContactDetails,
		TaxID:          vendor.TaxID,
		Notes:          vendor.Notes,
		CreatedAt:      vendor.CreatedAt,
		UpdatedAt:      vendor.UpdatedAt,
	}
}

// ToVendorResponses converts a slice of vendors
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses
}
