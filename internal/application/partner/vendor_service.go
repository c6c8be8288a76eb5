package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
	}
}

// Create creates a new vendor. Names that normalize to an existing vendor
// are rejected so spreadsheet variants of the same vendor collapse into one.
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	normalized := partner.NormalizeName(req.Name)
	exists, err := s.vendorRepo.ExistsByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this name already exists")
	}

	vendor, err := partner.NewVendor(req.Name, req.ContactDetails, req.TaxID)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		vendor.SetNotes(req.Notes)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, filter VendorListFilter) ([]VendorResponse, int64, error) {
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
	}

	vendors, err := s.vendorRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.vendorRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToVendorResponses(vendors), total, nil
}

// Update updates a vendor
func (s *VendorService) Update(ctx context.Context, vendorID uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != vendor.Name {
		normalized := partner.NormalizeName(*req.Name)
		if normalized != vendor.NormalizedName {
			exists, err := s.vendorRepo.ExistsByNormalizedName(ctx, normalized)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this name already exists")
			}
		}
		if err := vendor.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactDetails != nil {
		vendor.SetContactDetails(*req.ContactDetails)
	}

	if req.TaxID != nil {
		if err := vendor.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		vendor.SetNotes(*req.Notes)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete deletes a vendor
func (s *VendorService) Delete(ctx context.Context, vendorID uuid.UUID) error {
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		return err
	}

	return s.vendorRepo.Delete(ctx, vendorID)
}
