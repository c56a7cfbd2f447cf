package handler

import "github.com/use-agent/wdbridge/wire"

// GetPrefs, SetPrefs, and ResetPrefs back the servo/prefs extension
// routes. Unlike every other command these are process-wide rather
// than session-scoped, so they do not gate on requireSession — the
// original likewise let prefs be read and written before a session
// existed.

func (h *Handler) GetPrefs(names []string) []wire.NamedPref {
	return h.prefs.Get(names)
}

func (h *Handler) SetPrefs(pairs []wire.NamedPref) {
	h.prefs.Set(pairs)
}

func (h *Handler) ResetPrefs(names []string) {
	h.prefs.Reset(names)
}
