package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Sharma Traders", "sharma traders"},
		{"trims", "  Sharma Traders  ", "sharma traders"},
		{"collapses internal whitespace", "Sharma   \t Traders", "sharma traders"},
		{"already normalized", "sharma traders", "sharma traders"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestNewVendor(t *testing.T) {
	t.Run("creates vendor with normalized name", func(t *testing.T) {
		vendor, err := NewVendor("  Gupta  Cement Supply ", "9876543210", "GSTIN123")
		require.NoError(t, err)

		assert.Equal(t, "  Gupta  Cement Supply ", vendor.Name)
		assert.Equal(t, "gupta cement supply", vendor.NormalizedName)
		assert.Equal(t, "9876543210", vendor.ContactDetails)
		assert.Equal(t, "GSTIN123", vendor.TaxID)
		assert.Equal(t, 1, vendor.GetVersion())
		assert.NotEqual(t, vendor.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("publishes created event", func(t *testing.T) {
		vendor, err := NewVendor("Singh Hardware", "", "")
		require.NoError(t, err)

		events := vendor.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeVendorCreated, events[0].EventType())
		assert.Equal(t, vendor.ID, events[0].AggregateID())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewVendor("   ", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects overlong tax id", func(t *testing.T) {
		long := make([]byte, 51)
		for i := range long {
			long[i] = 'X'
		}
		_, err := NewVendor("Vendor", "", string(long))
		assert.Error(t, err)
	})
}

func TestVendorRename(t *testing.T) {
	vendor, err := NewVendor("Old Name", "", "")
	require.NoError(t, err)
	vendor.ClearDomainEvents()

	t.Run("updates name and normalized key", func(t *testing.T) {
		err := vendor.Rename("New  Name")
		require.NoError(t, err)
		assert.Equal(t, "New  Name", vendor.Name)
		assert.Equal(t, "new name", vendor.NormalizedName)
		assert.Equal(t, 2, vendor.GetVersion())

		events := vendor.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeVendorUpdated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := vendor.Rename("")
		assert.Error(t, err)
	})
}

func TestVendorSetters(t *testing.T) {
	vendor, err := NewVendor("Vendor", "", "")
	require.NoError(t, err)

	vendor.SetContactDetails("call after 6pm")
	assert.Equal(t, "call after 6pm", vendor.ContactDetails)

	require.NoError(t, vendor.SetTaxID("27AAPFU0939F1ZV"))
	assert.Equal(t, "27AAPFU0939F1ZV", vendor.TaxID)

	vendor.SetNotes("preferred for steel")
	assert.Equal(t, "preferred for steel", vendor.Notes)

	// Each setter bumps the optimistic-lock version.
	assert.Equal(t, 4, vendor.GetVersion())
}
