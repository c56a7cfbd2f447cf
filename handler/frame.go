package handler

import "github.com/use-agent/wdbridge/wire"

// SwitchToFrame accepts only the top-level context (a nil id): numeric
// short ids and element-addressed frames are both rejected with
// UnsupportedOperation, since this bridge models a single top-level
// browsing context and has no per-frame Controller wiring, per the
// Non-goals around frame selection.
func (h *Handler) SwitchToFrame(p wire.SwitchToFrameParameters) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if p.ID == nil {
		return nil
	}
	return wire.NewError(wire.UnsupportedOperation, "Selecting frame by id not supported")
}

// SwitchToParentFrame is always a no-op: there is never a child frame
// to have switched into in the first place.
func (h *Handler) SwitchToParentFrame() *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _, werr := h.requireSession()
	return werr
}

// DismissAlert is a stub: no user-prompt plumbing exists, per the
// Non-goals, so the command always reports success.
func (h *Handler) DismissAlert() *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, _, werr := h.requireSession()
	return werr
}
