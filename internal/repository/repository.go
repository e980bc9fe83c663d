// Package repository holds the gorm data access layer. Every repository
// wraps the shared *gorm.DB; write methods accept an optional tx so a
// service can compose several writes into one unit of work.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orderledger/pkg/apperr"
)

// lockForUpdate applies a SELECT ... FOR UPDATE row lock on dialects that
// support it. SQLite has no FOR UPDATE; its transactions serialize writers,
// which is enough for the tests that run on it.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// cursorTime resolves a pagination cursor to the creation time of the row
// it names. An empty cursor means "start of feed"; an unknown cursor id is a
// caller error, not an internal one.
func cursorTime(ctx context.Context, db *gorm.DB, entity interface{}, cursor string) (*time.Time, error) {
	if cursor == "" {
		return nil, nil
	}

	var row struct {
		CreatedAt time.Time
	}
	err := db.WithContext(ctx).
		Model(entity).
		Select("created_at").
		Where("id = ?", cursor).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Invalid("unknown cursor %q", cursor)
		}
		return nil, err
	}
	return &row.CreatedAt, nil
}
