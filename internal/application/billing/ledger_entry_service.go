package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/catalog"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// LedgerEntryService handles expenditure record operations
type LedgerEntryService struct {
	entryRepo      billing.LedgerEntryRepository
	allocationRepo billing.AllocationRepository
	vendorRepo     partner.VendorRepository
	itemRepo       catalog.ItemRepository
}

// NewLedgerEntryService creates a new LedgerEntryService
func NewLedgerEntryService(
	entryRepo billing.LedgerEntryRepository,
	allocationRepo billing.AllocationRepository,
	vendorRepo partner.VendorRepository,
	itemRepo catalog.ItemRepository,
) *LedgerEntryService {
	return &LedgerEntryService{
		entryRepo:      entryRepo,
		allocationRepo: allocationRepo,
		vendorRepo:     vendorRepo,
		itemRepo:       itemRepo,
	}
}

// Create records a new expenditure
func (s *LedgerEntryService) Create(ctx context.Context, req CreateLedgerEntryRequest) (*LedgerEntryResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Referenced item does not exist")
	}
	if err := s.verifyVendorRefs(ctx, req.SourceVendorID, req.PaidToVendorID); err != nil {
		return nil, err
	}

	entry, err := billing.NewLedgerEntry(req.EntryDate, req.ItemID, req.SourceVendorID, req.PaidToVendorID,
		req.Quantity, req.Unit, req.TotalAmount, req.Remarks)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToLedgerEntryResponse(entry, decimal.Zero)
	return &response, nil
}

// GetByID retrieves an entry together with its live allocation sum
func (s *LedgerEntryService) GetByID(ctx context.Context, entryID uuid.UUID) (*LedgerEntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	allocated, err := s.allocationRepo.SumAllocatedForEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	response := ToLedgerEntryResponse(entry, allocated)
	return &response, nil
}

// List retrieves entries with filtering, pagination, and allocation sums
func (s *LedgerEntryService) List(ctx context.Context, filter LedgerEntryListFilter) ([]LedgerEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "entry_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.VendorID != nil {
		domainFilter.Filters["paid_to_vendor_id"] = *filter.VendorID
	}
	if filter.ItemID != nil {
		domainFilter.Filters["item_id"] = *filter.ItemID
	}

	entries, err := s.entryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.entryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	entryIDs := make([]uuid.UUID, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].ID
	}
	allocatedByEntry, err := s.allocationRepo.SumAllocatedForEntries(ctx, entryIDs)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i], allocatedByEntry[entries[i].ID])
	}

	return responses, total, nil
}

// Update updates an entry. Financial fields (quantity, total amount) are
// frozen once any allocation references the entry; the caller must delete
// the allocations, or run a reconciliation, before correcting the figures.
func (s *LedgerEntryService) Update(ctx context.Context, entryID uuid.UUID, req UpdateLedgerEntryRequest) (*LedgerEntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil || req.TotalAmount != nil {
		count, err := s.allocationRepo.CountForEntry(ctx, entryID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, shared.ErrEntryAllocated
		}

		quantity := entry.Quantity
		totalAmount := entry.TotalAmount
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if req.TotalAmount != nil {
			totalAmount = *req.TotalAmount
		}
		if err := entry.UpdateFinancials(quantity, totalAmount); err != nil {
			return nil, err
		}
	}

	if req.EntryDate != nil || req.ItemID != nil || req.SourceVendorID != nil || req.PaidToVendorID != nil ||
		req.Unit != nil || req.Remarks != nil {
		entryDate := entry.EntryDate
		itemID := entry.ItemID
		sourceVendorID := entry.SourceVendorID
		paidToVendorID := entry.PaidToVendorID
		unit := entry.Unit
		remarks := entry.Remarks

		if req.EntryDate != nil {
			entryDate = *req.EntryDate
		}
		if req.ItemID != nil {
			if _, err := s.itemRepo.FindByID(ctx, *req.ItemID); err != nil {
				return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Referenced item does not exist")
			}
			itemID = *req.ItemID
		}
		if req.SourceVendorID != nil {
			sourceVendorID = req.SourceVendorID
		}
		if req.PaidToVendorID != nil {
			// Moving an allocated entry to another vendor would orphan its
			// allocations.
			if entry.PaidToVendorID == nil || *req.PaidToVendorID != *entry.PaidToVendorID {
				count, err := s.allocationRepo.CountForEntry(ctx, entryID)
				if err != nil {
					return nil, err
				}
				if count > 0 {
					return nil, shared.ErrEntryAllocated
				}
			}
			paidToVendorID = req.PaidToVendorID
		}
		if req.Unit != nil {
			unit = *req.Unit
		}
		if req.Remarks != nil {
			remarks = *req.Remarks
		}

		if err := s.verifyVendorRefs(ctx, sourceVendorID, paidToVendorID); err != nil {
			return nil, err
		}
		if err := entry.UpdateDetails(entryDate, itemID, sourceVendorID, paidToVendorID, unit, remarks); err != nil {
			return nil, err
		}
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	allocated, err := s.allocationRepo.SumAllocatedForEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	response := ToLedgerEntryResponse(entry, allocated)
	return &response, nil
}

// Delete deletes an entry. Rejected while allocations reference it.
func (s *LedgerEntryService) Delete(ctx context.Context, entryID uuid.UUID) error {
	if _, err := s.entryRepo.FindByID(ctx, entryID); err != nil {
		return err
	}

	count, err := s.allocationRepo.CountForEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrEntryAllocated
	}

	return s.entryRepo.Delete(ctx, entryID)
}

func (s *LedgerEntryService) verifyVendorRefs(ctx context.Context, sourceVendorID, paidToVendorID *uuid.UUID) error {
	if sourceVendorID != nil && *sourceVendorID != uuid.Nil {
		if _, err := s.vendorRepo.FindByID(ctx, *sourceVendorID); err != nil {
			return shared.NewDomainError("VENDOR_NOT_FOUND", "Source vendor does not exist")
		}
	}
	if paidToVendorID != nil && *paidToVendorID != uuid.Nil {
		if _, err := s.vendorRepo.FindByID(ctx, *paidToVendorID); err != nil {
			return shared.NewDomainError("VENDOR_NOT_FOUND", "Paid-to vendor does not exist")
		}
	}
	return nil
}
