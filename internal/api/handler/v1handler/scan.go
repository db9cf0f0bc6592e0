package v1handler

import (
	"errors"
	"io"
	"net/http"
	"phishnet/pkg/serrors"
	"strconv"

	"github.com/go-faster/jx"
)

// ScanRequest is the body of POST /api/scan.
type ScanRequest struct {
	URL string
}

// Decode reads a ScanRequest. The url field is required and must be a string;
// other fields are ignored.
func (s *ScanRequest) Decode(d *jx.Decoder) error {
	var found bool
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != "url" {
			return d.Skip()
		}
		if d.Next() != jx.String {
			return errors.New("url must be a string")
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		s.URL, found = v, true

		return nil
	}); err != nil {
		return err
	}
	if !found {
		return errors.New("field required: url")
	}

	return nil
}

// Scan classifies the submitted URL.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.options.MaxBodyBytes))
	if err != nil {
		h.writeError(w, r, serrors.Wrap(serrors.ErrUnprocessable, err, "could not read request body"))

		return
	}

	var req ScanRequest
	if err := req.Decode(jx.DecodeBytes(body)); err != nil {
		h.writeError(w, r, serrors.With(serrors.ErrUnprocessable, "invalid request body: %s", err))

		return
	}

	verdict, err := h.deps.Scanner.Scan(r.Context(), req.URL)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, verdict.Encode)
}

func (h *Handler) parseLimit(raw string) (uint, error) {
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || limit == 0 {
		return 0, serrors.With(serrors.ErrBadRequest, "limit must be a positive integer")
	}

	return uint(limit), nil
}
