package v1handler

import (
	"net/http"
	"phishnet/internal/scanner"

	"github.com/go-faster/jx"
)

// History lists recent scans, newest first. Query parameters: url, limit, cursor.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := h.parseLimit(q.Get("limit"))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	records, next, err := h.deps.Scanner.History(r.Context(), scanner.HistoryQuery{
		URL:    q.Get("url"),
		Cursor: q.Get("cursor"),
		Limit:  limit,
	})
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("items")
		e.ArrStart()
		for i := range records {
			records[i].Encode(e)
		}
		e.ArrEnd()
		e.FieldStart("next_cursor")
		if next == "" {
			e.Null()
		} else {
			e.Str(next)
		}
		e.ObjEnd()
	})
}
