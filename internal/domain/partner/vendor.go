package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/sitekhata/backend/internal/domain/shared"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeName produces the deduplication key for a vendor name:
// trimmed, lowercased, with internal whitespace collapsed to single spaces.
func NormalizeName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), " ")
}

// Vendor represents a supplier of materials or services on the project.
// It is the aggregate root for vendor-related operations.
// A vendor may appear both as the source of goods and as the party a
// payment is made out to; the ledger tracks those roles per entry.
type Vendor struct {
	shared.BaseAggregateRoot
	Name           string `gorm:"type:varchar(200);not null"`
	NormalizedName string `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactDetails string `gorm:"type:text"`
	TaxID          string `gorm:"type:varchar(50)"`
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with required fields
func NewVendor(name, contactDetails, taxID string) (*Vendor, error) {
	if err := validateVendorName(name); err != nil {
		return nil, err
	}
	if taxID != "" && len(taxID) > 50 {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	vendor := &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		NormalizedName:    NormalizeName(name),
		ContactDetails:    contactDetails,
		TaxID:             taxID,
	}

	vendor.AddDomainEvent(NewVendorCreatedEvent(vendor))

	return vendor, nil
}

// Rename changes the vendor's display name and recomputes the
// normalized dedup key.
func (v *Vendor) Rename(name string) error {
	if err := validateVendorName(name); err != nil {
		return err
	}

	v.Name = name
	v.NormalizedName = NormalizeName(name)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorUpdatedEvent(v))

	return nil
}

// SetContactDetails sets the vendor's contact information
func (v *Vendor) SetContactDetails(contactDetails string) {
	v.ContactDetails = contactDetails
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// SetTaxID sets the vendor's tax identification number
func (v *Vendor) SetTaxID(taxID string) error {
	if taxID != "" && len(taxID) > 50 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 50 characters")
	}

	v.TaxID = taxID
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetNotes sets the vendor's notes
func (v *Vendor) SetNotes(notes string) {
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

func validateVendorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}
	return nil
}
