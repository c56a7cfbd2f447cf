package actions

import (
	"context"
	"sync"
	"testing"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/session"
	"github.com/use-agent/wdbridge/wire"
)

// fakeController records every call it receives so tests can assert on
// dispatch order without a real browser.
type fakeController struct {
	controller.Controller

	mu    sync.Mutex
	calls []string
}

func (f *fakeController) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *fakeController) KeyDown(ctx context.Context, value string) error {
	f.record("keyDown:" + value)
	return nil
}

func (f *fakeController) KeyUp(ctx context.Context, value string) error {
	f.record("keyUp:" + value)
	return nil
}

func (f *fakeController) PointerMoveTo(ctx context.Context, x, y float64) error {
	f.record("move")
	return nil
}

func (f *fakeController) PointerDown(ctx context.Context, button controller.PointerButton) error {
	f.record("pointerDown")
	return nil
}

func (f *fakeController) PointerUp(ctx context.Context, button controller.PointerButton) error {
	f.record("pointerUp")
	return nil
}

func TestDispatchKeyPressAndRelease(t *testing.T) {
	ctrl := &fakeController{}
	inputs := session.NewInputStateTable()

	seqs := []wire.ActionSequence{{
		ID:   "keyboard",
		Type: "key",
		Actions: []wire.ActionItem{
			{Type: "keyDown", Value: "a"},
			{Type: "keyUp", Value: "a"},
		},
	}}

	if err := Dispatch(context.Background(), ctrl, inputs, seqs, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(ctrl.calls) != 2 || ctrl.calls[0] != "keyDown:a" || ctrl.calls[1] != "keyUp:a" {
		t.Fatalf("unexpected call order: %v", ctrl.calls)
	}
}

func TestReleaseUndoesHeldKey(t *testing.T) {
	ctrl := &fakeController{}
	inputs := session.NewInputStateTable()

	seqs := []wire.ActionSequence{{
		ID:      "keyboard",
		Type:    "key",
		Actions: []wire.ActionItem{{Type: "keyDown", Value: "shift"}},
	}}
	if err := Dispatch(context.Background(), ctrl, inputs, seqs, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	ctrl.calls = nil

	if err := Release(context.Background(), ctrl, inputs); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if len(ctrl.calls) != 1 || ctrl.calls[0] != "keyUp:shift" {
		t.Fatalf("expected release to replay keyUp:shift, got %v", ctrl.calls)
	}
}

func TestPointerDownRecordsCancelForUp(t *testing.T) {
	ctrl := &fakeController{}
	inputs := session.NewInputStateTable()

	seqs := []wire.ActionSequence{{
		ID:      "mouse",
		Type:    "pointer",
		Pointer: &wire.PointerSequence{PointerType: "mouse"},
		Actions: []wire.ActionItem{
			{Type: "pointerDown", Button: 0},
		},
	}}
	if err := Dispatch(context.Background(), ctrl, inputs, seqs, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	cancelled := inputs.DrainCancelReversed()
	if len(cancelled) != 1 || cancelled[0].Type != "pointerUp" {
		t.Fatalf("expected one pointerUp cancel action, got %v", cancelled)
	}
}
