// Package storage defines the persistence interfaces for the scan history.
// Concrete backends (e.g. PostgreSQL) live in sub packages.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"phishnet/pkg/domain"
	"time"
)

// Cursor is a keyset position in the newest-first record order. Records are
// ordered by CreatedAt and then ID, both descending, so records sharing a
// timestamp are still paged exactly once.
type Cursor struct {
	CreatedAt time.Time
	ID        domain.RecordID
}

// RecordPage is a page of scan records with an optional cursor to the next one.
type RecordPage struct {
	// Records are ordered newest first.
	Records []domain.ScanRecord
	// NextCursor points at the last record when more records exist, nil otherwise.
	NextCursor *Cursor
}

// RecordStorage stores and lists scan records.
type RecordStorage interface {
	// StoreRecords inserts records and returns them with generated ID and CreatedAt.
	StoreRecords(ctx context.Context, records ...domain.ScanRecord) ([]domain.ScanRecord, error)
	// RecentRecords returns up to limit records positioned after cursor
	// (from the newest record when cursor is nil), newest first.
	RecentRecords(ctx context.Context, cursor *Cursor, limit uint) (RecordPage, error)
	// RecordsByURL is RecentRecords restricted to records of an exact URL.
	RecordsByURL(ctx context.Context, URL string, cursor *Cursor, limit uint) (RecordPage, error)
}
