package postgres

import (
	"context"
	"fmt"
	"phishnet/pkg/domain"
	"phishnet/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	recordsTable = "scan_records"
)

// Ensure PgSQL conforms to the storage.RecordStorage interface at compile time.
var _ storage.RecordStorage = (*PgSQL)(nil)

func (p *PgSQL) StoreRecords(ctx context.Context, records ...domain.ScanRecord) ([]domain.ScanRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var result []PgRecord
	if err := p.Builder.Insert(recordsTable).
		Rows(domainRecordsToPg(records)).
		Returning(&PgRecord{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store scan records into pg: %w", err)
	}

	return pgRecordsToDomain(result)
}

// RecentRecords pages over all records ordered by created_at DESC, id DESC.
func (p *PgSQL) RecentRecords(ctx context.Context, cursor *storage.Cursor, limit uint) (storage.RecordPage, error) {
	return p.page(ctx, nil, cursor, limit)
}

// RecordsByURL pages over the records of URL ordered by created_at DESC, id DESC.
func (p *PgSQL) RecordsByURL(
	ctx context.Context, URL string, cursor *storage.Cursor, limit uint,
) (storage.RecordPage, error) {
	return p.page(ctx, goqu.I("url").Eq(URL), cursor, limit)
}

func (p *PgSQL) page(
	ctx context.Context, filter exp.Expression, cursor *storage.Cursor, limit uint,
) (storage.RecordPage, error) {
	ds := p.Builder.From(recordsTable).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		// fetch one extra to determine if there is a next page
		Limit(limit + 1)
	if filter != nil {
		ds = ds.Where(filter)
	}
	if cursor != nil {
		ds = ds.Where(goqu.L("(created_at, id) < (?, ?)", cursor.CreatedAt, uuid.UUID(cursor.ID)))
	}

	var rows []PgRecord
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.RecordPage{}, fmt.Errorf("could not fetch scan records from pg: %w", err)
	}

	var next *storage.Cursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		if limit > 0 {
			last := rows[len(rows)-1]
			next = &storage.Cursor{CreatedAt: last.CreatedAt, ID: domain.RecordID(last.ID)}
		}
	}

	records, err := pgRecordsToDomain(rows)
	if err != nil {
		return storage.RecordPage{}, err
	}

	return storage.RecordPage{
		Records:    records,
		NextCursor: next,
	}, nil
}
