package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sitekhata/backend/internal/domain/billing"
	"github.com/sitekhata/backend/internal/domain/catalog"
	"github.com/sitekhata/backend/internal/domain/identity"
	"github.com/sitekhata/backend/internal/domain/partner"
	"github.com/sitekhata/backend/internal/domain/worklog"
)

// newTestDB opens an isolated in-memory sqlite database with the full
// schema migrated. MaxOpenConns is pinned to one because every sqlite
// :memory: connection is its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&partner.Vendor{},
		&catalog.Item{},
		&billing.LedgerEntry{},
		&billing.Payment{},
		&billing.Allocation{},
		&identity.User{},
		&worklog.DailyWorkLog{},
		&worklog.WorkMedia{},
	))

	return db
}
