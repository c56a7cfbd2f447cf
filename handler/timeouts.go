package handler

import "github.com/use-agent/wdbridge/wire"

func (h *Handler) GetTimeouts() (wire.Timeouts, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, _, werr := h.requireSession()
	if werr != nil {
		return wire.Timeouts{}, werr
	}
	return wire.Timeouts{
		Script:   sess.ScriptTimeoutMs,
		PageLoad: sess.PageLoadTimeoutMs,
		Implicit: sess.ImplicitWaitMs,
	}, nil
}

func (h *Handler) SetTimeouts(p wire.TimeoutsParameters) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, _, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if p.Script != nil {
		sess.ScriptTimeoutMs = p.Script
	}
	if p.PageLoad != nil {
		sess.PageLoadTimeoutMs = *p.PageLoad
	}
	if p.Implicit != nil {
		sess.ImplicitWaitMs = *p.Implicit
	}
	return nil
}
