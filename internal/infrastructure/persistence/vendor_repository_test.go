package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/shared"
)

func TestGormVendorRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormVendorRepository(db)

	sharma, err := partner.NewVendor("Sharma Cement Traders", "98xxx", "TAX-1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sharma))

	verma, err := partner.NewVendor("Verma Steel", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, verma))

	t.Run("FindByID returns saved vendor", func(t *testing.T) {
		found, err := repo.FindByID(ctx, sharma.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sharma Cement Traders", found.Name)
		assert.Equal(t, sharma.NormalizedName, found.NormalizedName)
	})

	t.Run("FindByID miss maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByNormalizedName resolves dedup key", func(t *testing.T) {
		found, err := repo.FindByNormalizedName(ctx, partner.NormalizeName("  SHARMA   cement  traders "))
		require.NoError(t, err)
		assert.Equal(t, sharma.ID, found.ID)

		_, err = repo.FindByNormalizedName(ctx, "no such vendor")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("ExistsByNormalizedName", func(t *testing.T) {
		exists, err := repo.ExistsByNormalizedName(ctx, verma.NormalizedName)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNormalizedName(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("FindAll with search narrows by name", func(t *testing.T) {
		vendors, err := repo.FindAll(ctx, shared.Filter{Search: "steel"})
		require.NoError(t, err)
		require.Len(t, vendors, 1)
		assert.Equal(t, verma.ID, vendors[0].ID)
	})

	t.Run("FindAll orders by name by default", func(t *testing.T) {
		vendors, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, vendors, 2)
		assert.Equal(t, "Sharma Cement Traders", vendors[0].Name)
		assert.Equal(t, "Verma Steel", vendors[1].Name)
	})

	t.Run("FindByIDs", func(t *testing.T) {
		vendors, err := repo.FindByIDs(ctx, []uuid.UUID{sharma.ID, verma.ID})
		require.NoError(t, err)
		assert.Len(t, vendors, 2)

		vendors, err = repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, vendors)
	})

	t.Run("Count honors search", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Search: "cement"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Delete removes vendor and reports missing rows", func(t *testing.T) {
		scratch, err := partner.NewVendor("Scratch Vendor", "", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, scratch))

		require.NoError(t, repo.Delete(ctx, scratch.ID))
		assert.ErrorIs(t, repo.Delete(ctx, scratch.ID), shared.ErrNotFound)
	})
}
