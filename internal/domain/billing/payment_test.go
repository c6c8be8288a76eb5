package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	vendorID := uuid.New()

	t.Run("creates payment", func(t *testing.T) {
		payment, err := NewPayment(vendorID, date("2024-01-02"), decimal.NewFromInt(5000),
			PaymentModeUPI, "UPI-12345", "advance for cement")
		require.NoError(t, err)

		assert.Equal(t, vendorID, payment.VendorID)
		assert.Equal(t, AllocationStatusUnallocated, payment.Status)

		events := payment.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentCreated, events[0].EventType())
	})

	t.Run("rejects missing vendor", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, date("2024-01-02"), decimal.NewFromInt(100), PaymentModeCash, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(vendorID, date("2024-01-02"), decimal.Zero, PaymentModeCash, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		_, err := NewPayment(vendorID, date("2024-01-02"), decimal.NewFromInt(100), PaymentMode("BARTER"), "", "")
		assert.Error(t, err)
	})
}

func TestDeriveAllocationStatus(t *testing.T) {
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name      string
		allocated decimal.Decimal
		expected  AllocationStatus
	}{
		{"zero allocated", decimal.Zero, AllocationStatusUnallocated},
		{"partially allocated", decimal.NewFromInt(40), AllocationStatusPartial},
		{"exactly allocated", decimal.NewFromInt(100), AllocationStatusFullyAllocated},
		{"sub-paisa short is fully allocated", decimal.NewFromFloat(99.995), AllocationStatusFullyAllocated},
		{"one paisa short stays partial", decimal.NewFromFloat(99.99), AllocationStatusPartial},
		{"outside tolerance below", decimal.NewFromFloat(99.98), AllocationStatusPartial},
		{"tiny allocation is partial", decimal.NewFromFloat(0.01), AllocationStatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveAllocationStatus(tt.allocated, amount))
		})
	}
}

func TestPaymentRecomputeStatus(t *testing.T) {
	vendorID := uuid.New()
	payment, err := NewPayment(vendorID, date("2024-01-02"), decimal.NewFromInt(100), PaymentModeCash, "", "")
	require.NoError(t, err)
	payment.ClearDomainEvents()

	t.Run("transitions to partial", func(t *testing.T) {
		payment.RecomputeStatus(decimal.NewFromInt(30))
		assert.Equal(t, AllocationStatusPartial, payment.Status)

		events := payment.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentStatusChanged, events[0].EventType())
	})

	t.Run("no event when status unchanged", func(t *testing.T) {
		payment.ClearDomainEvents()
		version := payment.GetVersion()
		payment.RecomputeStatus(decimal.NewFromInt(50))
		assert.Equal(t, AllocationStatusPartial, payment.Status)
		assert.Empty(t, payment.GetDomainEvents())
		assert.Equal(t, version, payment.GetVersion())
	})

	t.Run("transitions to fully allocated", func(t *testing.T) {
		payment.RecomputeStatus(decimal.NewFromInt(100))
		assert.True(t, payment.IsFullyAllocated())
	})
}

func TestPaymentRemainingAmount(t *testing.T) {
	payment, err := NewPayment(uuid.New(), date("2024-01-02"), decimal.NewFromInt(120), PaymentModeCheque, "000111", "")
	require.NoError(t, err)

	assert.True(t, payment.RemainingAmount(decimal.Zero).Equal(decimal.NewFromInt(120)))
	assert.True(t, payment.RemainingAmount(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(20)))
}
