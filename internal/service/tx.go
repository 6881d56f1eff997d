package service

import (
	"context"

	"gorm.io/gorm"
)

// corteLockKey is the advisory-lock key serializing corte rollovers against
// concurrent permiso creation. Both paths read the active corte and write
// under the same transaction, so a permiso can never land on a corte that was
// superseded mid-operation.
const corteLockKey = 7201334

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// lockCortes takes the transaction-scoped advisory lock; released on
// commit/rollback. No-op without a real connection.
func lockCortes(tx *gorm.DB) error {
	if tx == nil {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", corteLockKey).Error
}
