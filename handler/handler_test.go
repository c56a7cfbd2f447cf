package handler

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/prefstore"
	"github.com/use-agent/wdbridge/wire"
)

// stubController is a minimal no-op Controller for exercising Handler
// session-gating and plumbing without a real browser.
type stubController struct {
	controller.Controller
	closed bool
}

func (s *stubController) Close(ctx context.Context) error {
	s.closed = true
	return nil
}

func (s *stubController) FocusedBrowsingContext(ctx context.Context) (string, bool, error) {
	return "context-1", true, nil
}

func (s *stubController) CurrentURL(ctx context.Context) (string, error) {
	return "about:blank", nil
}

func newTestHandler(t *testing.T) (*Handler, *stubController) {
	t.Helper()
	stub := &stubController{}
	h := New(DefaultConfig(), func(ctx context.Context) (controller.Controller, error) {
		return stub, nil
	}, prefstore.New(), slog.Default())
	return h, stub
}

func TestCommandsRequireSessionFirst(t *testing.T) {
	h, _ := newTestHandler(t)
	if _, werr := h.CurrentURL(context.Background()); werr == nil || werr.Status != wire.SessionNotCreated {
		t.Fatalf("expected SessionNotCreated before NewSession, got %v", werr)
	}
}

func TestSecondNewSessionIsRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("first NewSession failed: %v", werr)
	}
	_, werr := h.NewSession(context.Background(), map[string]any{})
	if werr == nil || werr.Status != wire.UnknownError {
		t.Fatalf("expected UnknownError on second NewSession, got %v", werr)
	}
}

func TestDeleteSessionAllowsNewSessionAgain(t *testing.T) {
	h, stub := newTestHandler(t)
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("NewSession failed: %v", werr)
	}
	if werr := h.DeleteSession(context.Background()); werr != nil {
		t.Fatalf("DeleteSession failed: %v", werr)
	}
	if !stub.closed {
		t.Fatalf("expected controller to be closed on DeleteSession")
	}
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("expected NewSession to succeed again, got %v", werr)
	}
}

func TestGetRejectsInvalidURL(t *testing.T) {
	h, _ := newTestHandler(t)
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("NewSession failed: %v", werr)
	}
	if werr := h.Get(context.Background(), ""); werr == nil || werr.Status != wire.InvalidArgument {
		t.Fatalf("expected InvalidArgument for empty URL, got %v", werr)
	}
}

func TestUnresolvedElementClickIsNoOp(t *testing.T) {
	h, _ := newTestHandler(t)
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("NewSession failed: %v", werr)
	}
	if werr := h.ElementClick(context.Background(), "nonexistent"); werr != nil {
		t.Fatalf("expected click against unknown element id to no-op, got %v", werr)
	}
}

func TestUnsupportedLocatorStrategy(t *testing.T) {
	h, _ := newTestHandler(t)
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("NewSession failed: %v", werr)
	}
	if _, werr := h.FindElement(context.Background(), wire.XPath, "//div"); werr == nil || werr.Status != wire.UnsupportedOperation {
		t.Fatalf("expected UnsupportedOperation for xpath, got %v", werr)
	}
}

// neverFocusedController never reports a ready browsing context, so
// NewSession's focus-acquisition poll must exhaust its deadline.
type neverFocusedController struct {
	controller.Controller
}

func (neverFocusedController) FocusedBrowsingContext(ctx context.Context) (string, bool, error) {
	return "", false, nil
}

func TestNewSessionTimesOutAcquiringFocusedContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FocusPollInterval = time.Millisecond
	cfg.FocusPollTimeout = 10 * time.Millisecond
	h := New(cfg, func(ctx context.Context) (controller.Controller, error) {
		return neverFocusedController{}, nil
	}, prefstore.New(), slog.Default())

	_, werr := h.NewSession(context.Background(), map[string]any{})
	if werr == nil || werr.Status != wire.Timeout {
		t.Fatalf("expected Timeout when focus never acquires, got %v", werr)
	}
	if _, werr := h.CurrentURL(context.Background()); werr == nil || werr.Status != wire.SessionNotCreated {
		t.Fatalf("expected no session left behind after a failed NewSession, got %v", werr)
	}
}

func TestSwitchToFrameRejectsNonTopLevel(t *testing.T) {
	h, _ := newTestHandler(t)
	if _, werr := h.NewSession(context.Background(), map[string]any{}); werr != nil {
		t.Fatalf("NewSession failed: %v", werr)
	}
	elem := "abc"
	if werr := h.SwitchToFrame(wire.SwitchToFrameParameters{ID: &wire.FrameID{Element: &elem}}); werr == nil || werr.Status != wire.UnsupportedOperation {
		t.Fatalf("expected UnsupportedOperation for non-top-level frame switch, got %v", werr)
	}
	if werr := h.SwitchToFrame(wire.SwitchToFrameParameters{ID: nil}); werr != nil {
		t.Fatalf("expected nil frame id to succeed, got %v", werr)
	}
}
