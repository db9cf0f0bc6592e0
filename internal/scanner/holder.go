package scanner

import "sync/atomic"

type loaded struct{ p Predictor }

// Holder keeps the active Predictor. It is empty until artifacts load
// successfully and can be swapped at runtime when artifacts are reloaded.
type Holder struct {
	v atomic.Pointer[loaded]
}

// NewHolder returns a Holder containing p; a nil p leaves it empty.
func NewHolder(p Predictor) *Holder {
	h := &Holder{}
	h.Store(p)

	return h
}

// Load returns the active Predictor or nil.
func (h *Holder) Load() Predictor {
	if l := h.v.Load(); l != nil {
		return l.p
	}

	return nil
}

// Store replaces the active Predictor. Storing nil empties the holder.
func (h *Holder) Store(p Predictor) {
	if p == nil {
		h.v.Store(nil)

		return
	}
	h.v.Store(&loaded{p: p})
}
