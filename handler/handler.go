// Package handler implements the WebDriver command surface: one method
// per protocol command, gating every command but NewSession, Status and
// the GetPrefs/SetPrefs/ResetPrefs extension commands on a session
// already existing (the prefs commands run with or without a session),
// and translating Controller results
// into the wire package's response/error vocabulary.
//
// A Handler instance is single-session, mirroring the original: a
// second NewSession while one is live is rejected outright rather than
// creating a second browsing context.
package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/prefstore"
	"github.com/use-agent/wdbridge/session"
	"github.com/use-agent/wdbridge/wire"
)

// ControllerFactory creates a new Controller bound to a freshly opened
// browsing context. The Handler calls it exactly once per NewSession.
type ControllerFactory func(ctx context.Context) (controller.Controller, error)

// Config carries the operational knobs a Handler needs beyond the
// per-session WebDriver defaults already owned by package session.
type Config struct {
	// ResizeTimeout bounds how long SetWindowRect waits for the
	// browser's own confirmation before returning anyway.
	ResizeTimeout time.Duration

	// ScreenshotPollInterval/ScreenshotPollTimeout bound the retry loop
	// TakeScreenshot runs while the compositor has nothing to hand back
	// yet (e.g. immediately after navigation).
	ScreenshotPollInterval time.Duration
	ScreenshotPollTimeout  time.Duration

	// FocusPollInterval/FocusPollTimeout bound NewSession's poll for the
	// focused top-level browsing context, and ElementSendKeys's poll
	// (after focusing) for the element to still resolve before typing.
	FocusPollInterval time.Duration
	FocusPollTimeout  time.Duration
}

// DefaultConfig returns the knob values the original bridge used.
func DefaultConfig() Config {
	return Config{
		ResizeTimeout:          500 * time.Millisecond,
		ScreenshotPollInterval: time.Second,
		ScreenshotPollTimeout:  30 * time.Second,
		FocusPollInterval:      20 * time.Millisecond,
		FocusPollTimeout:       30 * time.Second,
	}
}

// Handler is the protocol state machine. Every command method holds mu
// for its whole duration, so commands run strictly one at a time even
// though the HTTP server calls them from concurrent request goroutines.
type Handler struct {
	mu  sync.Mutex
	cfg Config
	log *slog.Logger

	newController ControllerFactory
	prefs         *prefstore.Store

	sess *session.Session
	ctrl controller.Controller

	// elements maps the opaque ids exposed to WebDriver clients to the
	// controller's own element handles, scoped to the lifetime of the
	// current session.
	elements map[string]controller.ElementHandle
}

// New creates a Handler with no active session.
func New(cfg Config, newController ControllerFactory, prefs *prefstore.Store, log *slog.Logger) *Handler {
	return &Handler{
		cfg:           cfg,
		log:           log,
		newController: newController,
		prefs:         prefs,
	}
}

// requireSession returns the active session and controller, or a
// SessionNotCreated error if none exists. Every command but NewSession
// and Status goes through this first.
func (h *Handler) requireSession() (*session.Session, controller.Controller, *wire.Error) {
	if h.sess == nil {
		return nil, nil, wire.NewError(wire.SessionNotCreated, "no session has been created")
	}
	return h.sess, h.ctrl, nil
}

// NewSession creates the session's browsing context and negotiates
// capabilities. A second call while a session is already active fails
// with UnknownError, matching the original's "Session already created"
// behavior rather than silently replacing the session.
func (h *Handler) NewSession(ctx context.Context, capabilities map[string]any) (wire.NewSessionResponse, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sess != nil {
		return wire.NewSessionResponse{}, wire.NewError(wire.UnknownError, "Session already created")
	}

	ctrl, err := h.newController(ctx)
	if err != nil {
		return wire.NewSessionResponse{}, wire.WrapError(wire.SessionNotCreated, "failed to start browsing context", err)
	}

	contextID, werr := acquireFocusedBrowsingContext(ctx, ctrl, h.cfg.FocusPollInterval, h.cfg.FocusPollTimeout)
	if werr != nil {
		_ = ctrl.Close(ctx)
		return wire.NewSessionResponse{}, werr
	}

	sess := session.New(contextID)
	processed := processCapabilities(sess, capabilities)

	h.sess = sess
	h.ctrl = ctrl
	h.elements = make(map[string]controller.ElementHandle)

	body, marshalErr := marshalJSON(processed)
	if marshalErr != nil {
		return wire.NewSessionResponse{}, wire.WrapError(wire.UnknownError, "failed to encode capabilities", marshalErr)
	}
	return wire.NewSessionResponse{SessionID: sess.ID, Capabilities: body}, nil
}

// DeleteSession closes the browsing context and forgets the session,
// so a later NewSession call can succeed again.
func (h *Handler) DeleteSession(ctx context.Context) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, _, werr := h.requireSession(); werr != nil {
		return werr
	}
	if h.ctrl != nil {
		_ = h.ctrl.Close(ctx)
	}
	h.sess = nil
	h.ctrl = nil
	h.elements = nil
	return nil
}

// Status reports readiness, independent of whether a session exists.
func (h *Handler) Status() (ready bool, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sess != nil {
		return false, "a session already exists"
	}
	return true, "ready for a new session"
}

// storeElement records a controller handle under the opaque id the
// Controller already gave it, and remembers the mapping for later FindElementFrom/Element*/click calls.
func (h *Handler) storeElement(handle controller.ElementHandle) string {
	id := handle.ID()
	h.elements[id] = handle
	return id
}

// acquireFocusedBrowsingContext implements "acquiring the focused
// top-level context": poll the Controller at interval until it reports
// a ready browsing context id, returning the first non-empty value; if
// none arrives within timeout, NewSession fails with Timeout rather
// than handing out a session bound to a context that may never settle.
func acquireFocusedBrowsingContext(ctx context.Context, ctrl controller.Controller, interval, timeout time.Duration) (string, *wire.Error) {
	deadline := time.Now().Add(timeout)
	for {
		if id, ok, err := ctrl.FocusedBrowsingContext(ctx); err == nil && ok {
			return id, nil
		}
		if time.Now().After(deadline) {
			return "", wire.NewError(wire.Timeout, "timed out acquiring the focused top-level browsing context")
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return "", wire.WrapError(wire.Timeout, "timed out acquiring the focused top-level browsing context", ctx.Err())
		}
	}
}

// resolveElement maps a client-supplied element id back to a
// controller handle, returning NoSuchElement if it is unknown to this
// session (it was never returned by a find call, or the session was
// reset since).
func (h *Handler) resolveElement(id string) (controller.ElementHandle, *wire.Error) {
	handle, ok := h.elements[id]
	if !ok {
		return controller.ElementHandle{}, wire.NewError(wire.NoSuchElement, "unknown element handle")
	}
	return handle, nil
}
