// Package pagination implements keyset (cursor) pagination over any feed
// sorted by creation time, newest first. Equal timestamps are tie-broken on
// id so the ordering is fully deterministic.
//
// A page is fetched as limit+1 rows; when the extra row exists the page is
// trimmed and NextCursor is the id of the last returned row. Passing that
// cursor back resumes strictly after it, so chaining cursors enumerates a
// stable feed exactly once. No snapshot isolation is provided: rows inserted
// ahead of already-seen rows during iteration are not re-delivered.
package pagination

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Params is the request shape shared by every list operation.
type Params struct {
	Limit  int    `form:"limit" json:"limit"`
	Cursor string `form:"cursor" json:"cursor"`
	Search string `form:"search" json:"search"`
}

// Normalize clamps Limit into [1, MaxLimit], defaulting to DefaultLimit.
func (p *Params) Normalize() {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
}

// Page is one page of results plus the continuation cursor. NextCursor is
// empty at the end of the feed.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Scope orders the feed and, when a cursor row is given, restricts it to
// rows strictly after that row in (created_at, id) descending order. Columns
// are qualified with table so the scope survives joins.
func Scope(table string, cursorCreatedAt *time.Time, cursorID string) func(*gorm.DB) *gorm.DB {
	createdAt := table + ".created_at"
	id := table + ".id"
	return func(db *gorm.DB) *gorm.DB {
		if cursorCreatedAt != nil {
			db = db.Where(
				"("+createdAt+" < ?) OR ("+createdAt+" = ? AND "+id+" < ?)",
				*cursorCreatedAt, *cursorCreatedAt, cursorID,
			)
		}
		return db.Order(createdAt + " DESC, " + id + " DESC")
	}
}

// Cut trims a limit+1 fetch down to a page. The id func extracts the cursor
// identity of a row.
func Cut[T any](items []T, limit int, id func(T) string) Page[T] {
	if len(items) <= limit {
		return Page[T]{Items: items}
	}
	items = items[:limit]
	return Page[T]{Items: items, NextCursor: id(items[limit-1])}
}
