package partner

import (
	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/shared"
)

// Aggregate type constant for Vendor
const AggregateTypeVendor = "Vendor"

// Event type constants for Vendor
const (
	EventTypeVendorCreated = "VendorCreated"
	EventTypeVendorUpdated = "VendorUpdated"
	EventTypeVendorDeleted = "VendorDeleted"
)

// VendorCreatedEvent is published when a new vendor is created
type VendorCreatedEvent struct {
	shared.BaseDomainEvent
	VendorID       uuid.UUID `json:"vendor_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
}

// NewVendorCreatedEvent creates a new VendorCreatedEvent
func NewVendorCreatedEvent(vendor *Vendor) *VendorCreatedEvent {
	return &VendorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreated, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		NormalizedName:  vendor.NormalizedName,
	}
}

// VendorUpdatedEvent is published when a vendor is updated
type VendorUpdatedEvent struct {
	shared.BaseDomainEvent
	VendorID       uuid.UUID `json:"vendor_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"normalized_name"`
}

// NewVendorUpdatedEvent creates a new VendorUpdatedEvent
func NewVendorUpdatedEvent(vendor *Vendor) *VendorUpdatedEvent {
	return &VendorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorUpdated, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
		NormalizedName:  vendor.NormalizedName,
	}
}

// VendorDeletedEvent is published when a vendor is deleted
type VendorDeletedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID `json:"vendor_id"`
	Name     string    `json:"name"`
}

// NewVendorDeletedEvent creates a new VendorDeletedEvent
func NewVendorDeletedEvent(vendor *Vendor) *VendorDeletedEvent {
	return &VendorDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorDeleted, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
	}
}
