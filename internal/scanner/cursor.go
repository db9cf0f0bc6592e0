package scanner

import (
	"fmt"
	"phishnet/pkg/domain"
	"phishnet/pkg/serrors"
	"phishnet/pkg/storage"
	"strings"
	"time"

	"github.com/google/uuid"
)

// cursorSep joins the two halves of a history cursor. RFC 3339 timestamps
// never contain it.
const cursorSep = "_"

// FormatCursor renders c as "<RFC3339Nano created_at>_<record id>".
func FormatCursor(c storage.Cursor) string {
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + uuid.UUID(c.ID).String()
}

// ParseCursor reverses FormatCursor. Malformed cursors are ErrBadRequest.
func ParseCursor(s string) (*storage.Cursor, error) {
	ts, id, found := strings.Cut(s, cursorSep)
	if !found {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid cursor")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}
	recordID, err := uuid.Parse(id)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
	}

	return &storage.Cursor{CreatedAt: createdAt, ID: domain.RecordID(recordID)}, nil
}

// HistoryQuery selects a page of the scan history.
type HistoryQuery struct {
	// URL, when set, restricts the history to scans of this exact URL.
	URL string
	// Cursor is the next_cursor of a previous page; empty starts at the newest record.
	Cursor string
	// Limit is the page size; 0 uses the default page size.
	Limit uint
}

func (q HistoryQuery) String() string {
	return fmt.Sprintf("url=%q cursor=%q limit=%d", q.URL, q.Cursor, q.Limit)
}
