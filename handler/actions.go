package handler

import (
	"context"
	"errors"

	"github.com/use-agent/wdbridge/actions"
	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/wire"
)

// PerformActions plays every input source's action sequence tick by
// tick, via the actions package's dispatcher, recording undo
// information so a later ReleaseActions can unwind whatever is still
// held down. DeleteSession does not replay the cancel list.
func (h *Handler) PerformActions(ctx context.Context, seqs []wire.ActionSequence) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	resolve := func(id string) (controller.ElementHandle, bool) {
		el, ok := h.elements[id]
		return el, ok
	}
	if err := actions.Dispatch(ctx, ctrl, sess.Inputs, seqs, resolve); err != nil {
		var wErr *wire.Error
		if errors.As(err, &wErr) {
			return wErr
		}
		return wire.WrapError(wire.UnknownError, "action dispatch failed", err)
	}
	return nil
}

// ReleaseActions reverses and replays the cancel list, then resets
// every input source to its default state.
func (h *Handler) ReleaseActions(ctx context.Context) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if err := actions.Release(ctx, ctrl, sess.Inputs); err != nil {
		return wire.WrapError(wire.UnknownError, "release actions failed", err)
	}
	return nil
}
