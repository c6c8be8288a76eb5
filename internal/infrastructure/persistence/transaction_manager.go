package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key under which an open transaction travels
type txKey struct{}

// GormTransactionManager implements billing.TransactionManager. It opens a
// GORM transaction and threads the transactional handle through the context
// so that repositories built on dbFor participate in it transparently.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. Repositories
// invoked with the derived context see uncommitted writes; returning an
// error rolls everything back.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFor resolves the database handle for the given context: the open
// transaction if one is in flight, the repository's own handle otherwise.
func dbFor(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
