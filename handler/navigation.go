package handler

import (
	"context"
	"net/url"

	"github.com/use-agent/wdbridge/wire"
)

// Get navigates the current browsing context to url and waits for load
// to settle, per the session's pageLoad timeout.
func (h *Handler) Get(ctx context.Context, rawURL string) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if _, err := url.Parse(rawURL); err != nil || rawURL == "" {
		return wire.NewError(wire.InvalidArgument, "Invalid URL")
	}

	loadCtx, cancel := withTimeoutMs(ctx, sess.PageLoadTimeoutMs)
	defer cancel()
	if err := ctrl.LoadURL(loadCtx, rawURL); err != nil {
		if loadCtx.Err() != nil {
			return wire.NewError(wire.Timeout, "Load timed out")
		}
		return wire.WrapError(wire.UnknownError, "navigation failed", err)
	}
	return nil
}

func (h *Handler) Refresh(ctx context.Context) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	loadCtx, cancel := withTimeoutMs(ctx, sess.PageLoadTimeoutMs)
	defer cancel()
	if err := ctrl.Refresh(loadCtx); err != nil {
		if loadCtx.Err() != nil {
			return wire.NewError(wire.Timeout, "Load timed out")
		}
		return wire.WrapError(wire.UnknownError, "refresh failed", err)
	}
	return nil
}

func (h *Handler) GoBack(ctx context.Context) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if err := ctrl.GoBack(ctx); err != nil {
		return wire.WrapError(wire.UnknownError, "go back failed", err)
	}
	return nil
}

func (h *Handler) GoForward(ctx context.Context) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if err := ctrl.GoForward(ctx); err != nil {
		return wire.WrapError(wire.UnknownError, "go forward failed", err)
	}
	return nil
}

func (h *Handler) CurrentURL(ctx context.Context) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	u, err := ctrl.CurrentURL(ctx)
	if err != nil {
		return "", wire.WrapError(wire.UnknownError, "failed to read current URL", err)
	}
	return u, nil
}

func (h *Handler) Title(ctx context.Context) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	t, err := ctrl.Title(ctx)
	if err != nil {
		return "", wire.WrapError(wire.UnknownError, "failed to read title", err)
	}
	return t, nil
}

func (h *Handler) PageSource(ctx context.Context) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	src, err := ctrl.PageSource(ctx)
	if err != nil {
		return "", wire.WrapError(wire.UnknownError, "failed to read page source", err)
	}
	return src, nil
}

// WindowHandle returns the session id, the only window handle a
// single-window bridge ever has.
func (h *Handler) WindowHandle() (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, _, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	return sess.ID, nil
}

func (h *Handler) WindowHandles() ([]string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, _, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}
	return []string{sess.ID}, nil
}

// SwitchToWindow accepts only the session's own handle: this bridge
// never opens a second window, per the Non-goals.
func (h *Handler) SwitchToWindow(handle string) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, _, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if handle != sess.ID {
		return wire.NewError(wire.NoSuchWindow, "no such window")
	}
	return nil
}

func (h *Handler) WindowRect(ctx context.Context) (wire.WindowRect, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return wire.WindowRect{}, werr
	}
	r, err := ctrl.WindowRect(ctx)
	if err != nil {
		return wire.WindowRect{}, wire.WrapError(wire.UnknownError, "failed to read window rect", err)
	}
	return wire.WindowRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, nil
}

func (h *Handler) SetWindowRect(ctx context.Context, x, y, width, height int) (wire.WindowRect, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return wire.WindowRect{}, werr
	}
	r, err := ctrl.SetWindowRect(ctx, toControllerRect(x, y, width, height), h.cfg.ResizeTimeout)
	if err != nil {
		return wire.WindowRect{}, wire.WrapError(wire.UnknownError, "failed to set window rect", err)
	}
	return wire.WindowRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, nil
}
