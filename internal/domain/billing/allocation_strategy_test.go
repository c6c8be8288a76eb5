package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOAllocationStrategy(t *testing.T) {
	strategy := NewFIFOAllocationStrategy()

	t.Run("allocates oldest first", func(t *testing.T) {
		older := AllocationTarget{EntryID: uuid.New(), EntryDate: date("2024-01-01"), DueAmount: decimal.NewFromInt(100), TotalAmount: decimal.NewFromInt(100)}
		newer := AllocationTarget{EntryID: uuid.New(), EntryDate: date("2024-01-05"), DueAmount: decimal.NewFromInt(50), TotalAmount: decimal.NewFromInt(50)}

		// Pass targets newest-first to prove the strategy sorts.
		result, err := strategy.Allocate(decimal.NewFromInt(120), []AllocationTarget{newer, older})
		require.NoError(t, err)

		require.Len(t, result.Lines, 2)
		assert.Equal(t, older.EntryID, result.Lines[0].EntryID)
		assert.True(t, result.Lines[0].Amount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, newer.EntryID, result.Lines[1].EntryID)
		assert.True(t, result.Lines[1].Amount.Equal(decimal.NewFromInt(20)))

		assert.True(t, result.TotalAllocated.Equal(decimal.NewFromInt(120)))
		assert.True(t, result.RemainingAmount.IsZero())
		assert.True(t, result.FullyAllocated)
		assert.Equal(t, []uuid.UUID{older.EntryID}, result.EntriesFullyPaid)
		assert.Equal(t, []uuid.UUID{newer.EntryID}, result.EntriesPartiallyPaid)
	})

	t.Run("breaks date ties by id", func(t *testing.T) {
		idA := uuid.MustParse("11111111-1111-1111-1111-111111111111")
		idB := uuid.MustParse("22222222-2222-2222-2222-222222222222")
		sameDay := date("2024-03-01")
		targets := []AllocationTarget{
			{EntryID: idB, EntryDate: sameDay, DueAmount: decimal.NewFromInt(60), TotalAmount: decimal.NewFromInt(60)},
			{EntryID: idA, EntryDate: sameDay, DueAmount: decimal.NewFromInt(60), TotalAmount: decimal.NewFromInt(60)},
		}

		result, err := strategy.Allocate(decimal.NewFromInt(60), targets)
		require.NoError(t, err)
		require.Len(t, result.Lines, 1)
		assert.Equal(t, idA, result.Lines[0].EntryID)
	})

	t.Run("skips settled entries", func(t *testing.T) {
		settled := AllocationTarget{EntryID: uuid.New(), EntryDate: date("2024-01-01"), DueAmount: decimal.Zero, TotalAmount: decimal.NewFromInt(100)}
		open := AllocationTarget{EntryID: uuid.New(), EntryDate: date("2024-01-02"), DueAmount: decimal.NewFromInt(40), TotalAmount: decimal.NewFromInt(40)}

		result, err := strategy.Allocate(decimal.NewFromInt(40), []AllocationTarget{settled, open})
		require.NoError(t, err)
		require.Len(t, result.Lines, 1)
		assert.Equal(t, open.EntryID, result.Lines[0].EntryID)
	})

	t.Run("excess amount stays remaining", func(t *testing.T) {
		target := AllocationTarget{EntryID: uuid.New(), EntryDate: date("2024-01-01"), DueAmount: decimal.NewFromInt(30), TotalAmount: decimal.NewFromInt(30)}

		result, err := strategy.Allocate(decimal.NewFromInt(100), []AllocationTarget{target})
		require.NoError(t, err)
		assert.True(t, result.RemainingAmount.Equal(decimal.NewFromInt(70)))
		assert.False(t, result.FullyAllocated)
	})

	t.Run("no targets", func(t *testing.T) {
		result, err := strategy.Allocate(decimal.NewFromInt(100), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Lines)
		assert.True(t, result.RemainingAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := strategy.Allocate(decimal.Zero, nil)
		assert.Error(t, err)
	})

	t.Run("reports its type", func(t *testing.T) {
		assert.Equal(t, AllocationStrategyTypeFIFO, strategy.StrategyType())
	})
}
