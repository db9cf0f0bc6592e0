// Package v1handler serves the public JSON API: scanning, scan history and the
// liveness message.
package v1handler

import (
	"context"
	"errors"
	"net/http"
	"phishnet/internal/scanner"
	"phishnet/pkg/logger"
	"phishnet/pkg/oracle"
	"phishnet/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// HomeMessage is returned by GET /.
const HomeMessage = "PhishNet Brain is Active. Use /api/scan to check URLs."

// DefaultMaxBodyBytes limits scan request bodies when no limit is configured.
const DefaultMaxBodyBytes = 64 << 10

type Deps struct {
	Scanner scanner.Scanner
}

type Options struct {
	// MaxBodyBytes limits the size of request bodies.
	MaxBodyBytes int64
}

type Handler struct {
	deps    Deps
	options Options
}

func New(deps Deps, options Options) *Handler {
	if options.MaxBodyBytes <= 0 {
		options.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, options: options}
}

// Register adds the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /api/scan", h.Scan)
	mux.HandleFunc("GET /api/history", h.History)
}

// Home reports that the service is up.
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("message")
		e.Str(HomeMessage)
		e.ObjEnd()
	})
}

// NewError maps err to an HTTP status and the detail reported to the client.
func (h *Handler) NewError(ctx context.Context, err error) (int, string) {
	_, msg, _ := serrors.KindOf(err)
	if msg == "" {
		msg = err.Error()
	}

	var status int
	detail := msg
	switch {
	case errors.Is(err, oracle.ErrArtifactUnavailable):
		status, detail = http.StatusInternalServerError, scanner.ModelNotLoadedMessage
	case errors.Is(err, serrors.ErrUnprocessable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, serrors.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, serrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serrors.ErrUnavailable):
		status = http.StatusServiceUnavailable
	default:
		// pipeline failures, oracle timeouts included, surface their raw message
		status, detail = http.StatusInternalServerError, err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err), zap.Int("status_code", status))
	} else {
		logger.Info(ctx, "request rejected", zap.Error(err), zap.Int("status_code", status))
	}

	return status, detail
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := h.NewError(r.Context(), err)
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("detail")
		e.Str(detail)
		e.ObjEnd()
	})
}

func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	encode(e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
