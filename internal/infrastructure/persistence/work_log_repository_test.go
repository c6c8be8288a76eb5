package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitekhata/backend/internal/domain/shared"
	"github.com/sitekhata/backend/internal/domain/worklog"
)

func TestGormWorkLogRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewGormWorkLogRepository(db)

	author := uuid.New()

	slabDay, err := worklog.NewDailyWorkLog(day(2026, 6, 10), "Slab casting, first floor", author)
	require.NoError(t, err)
	_, err = slabDay.AttachMedia(worklog.MediaTypePhoto, "worklogs/a/one.jpg", "Rebar before pour")
	require.NoError(t, err)
	_, err = slabDay.AttachMedia(worklog.MediaTypeVideo, "worklogs/a/two.mp4", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, slabDay))

	quietDay, err := worklog.NewDailyWorkLog(day(2026, 6, 20), "Curing only", author)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, quietDay))

	t.Run("FindByID loads media with the log", func(t *testing.T) {
		found, err := repo.FindByID(ctx, slabDay.ID)
		require.NoError(t, err)
		assert.Equal(t, "Slab casting, first floor", found.Description)
		require.Len(t, found.Media, 2)
	})

	t.Run("FindByID miss maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByDateRange is inclusive", func(t *testing.T) {
		logs, err := repo.FindByDateRange(ctx, day(2026, 6, 10), day(2026, 6, 15))
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, slabDay.ID, logs[0].ID)
	})

	t.Run("FindAll newest first with media preloaded", func(t *testing.T) {
		logs, err := repo.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, quietDay.ID, logs[0].ID)
		assert.Len(t, logs[1].Media, 2)
	})

	t.Run("Count with search", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{Search: "curing"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Save prunes media removed from the aggregate", func(t *testing.T) {
		log, err := repo.FindByID(ctx, slabDay.ID)
		require.NoError(t, err)
		removedID := log.Media[0].ID
		require.NoError(t, log.RemoveMedia(removedID))
		require.NoError(t, repo.Save(ctx, log))

		reloaded, err := repo.FindByID(ctx, slabDay.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Media, 1)
		assert.NotEqual(t, removedID, reloaded.Media[0].ID)
	})

	t.Run("Delete removes the log and its media", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, slabDay.ID))
		assert.ErrorIs(t, repo.Delete(ctx, slabDay.ID), shared.ErrNotFound)

		var orphanCount int64
		require.NoError(t, db.Model(&worklog.WorkMedia{}).
			Where("work_log_id = ?", slabDay.ID).
			Count(&orphanCount).Error)
		assert.Equal(t, int64(0), orphanCount)
	})
}
