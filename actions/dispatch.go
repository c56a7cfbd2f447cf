// Package actions implements the W3C Actions dispatch algorithm:
// advancing a set of per-source action sequences tick by tick, with
// every source's action for a given tick played concurrently the way
// the original compositor treated input devices as independent
// state machines.
//
// The concurrency shape is borrowed from the teacher's
// engine.Dispatcher.race: one goroutine per participant, fanned out
// with sync.WaitGroup and collected over a buffered channel — except
// here every goroutine must finish (a tick is a barrier), not just the
// first.
package actions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/session"
	"github.com/use-agent/wdbridge/wire"
)

// ElementResolver maps a web element reference (as carried in a
// pointerMove action's "element" origin) to the live controller handle
// it refers to. The Handler supplies this, since it owns the
// id-to-handle table the find-element commands populate.
type ElementResolver func(id string) (controller.ElementHandle, bool)

// Dispatch plays every action sequence in seqs against ctrl, tick by
// tick, recording undo information into inputs' cancel list as it
// goes. It returns as soon as any tick produces an error.
func Dispatch(ctx context.Context, ctrl controller.Controller, inputs *session.InputStateTable, seqs []wire.ActionSequence, resolve ElementResolver) error {
	tickCount := 0
	for _, seq := range seqs {
		if len(seq.Actions) > tickCount {
			tickCount = len(seq.Actions)
		}
	}

	for tick := 0; tick < tickCount; tick++ {
		if err := playTick(ctx, ctrl, inputs, seqs, tick, resolve); err != nil {
			return err
		}
	}
	return nil
}

// Release replays the cancel list built up by prior Dispatch calls, in
// reverse order, then resets every input source to its default state —
// the ReleaseActions algorithm.
func Release(ctx context.Context, ctrl controller.Controller, inputs *session.InputStateTable) error {
	for _, a := range inputs.DrainCancelReversed() {
		var err error
		switch a.Type {
		case "keyUp":
			err = ctrl.KeyUp(ctx, a.Value)
		case "pointerUp":
			err = ctrl.PointerUp(ctx, controller.PointerButton(a.Button))
		case "pointerMove":
			err = ctrl.PointerMoveTo(ctx, a.X, a.Y)
		}
		if err != nil {
			return err
		}
	}
	inputs.Reset()
	return nil
}

type tickResult struct {
	sourceID string
	err      error
}

// playTick dispatches tick's action for every source in parallel and
// waits for all of them, mirroring race's fan-out/wait-group shape but
// as a barrier rather than a first-wins race.
func playTick(ctx context.Context, ctrl controller.Controller, inputs *session.InputStateTable, seqs []wire.ActionSequence, tick int, resolve ElementResolver) error {
	results := make(chan tickResult, len(seqs))
	var wg sync.WaitGroup

	var maxDuration time.Duration
	for _, seq := range seqs {
		if tick >= len(seq.Actions) {
			continue
		}
		if d := time.Duration(seq.Actions[tick].Duration) * time.Millisecond; d > maxDuration {
			maxDuration = d
		}
	}

	for _, seq := range seqs {
		if tick >= len(seq.Actions) {
			continue
		}
		wg.Add(1)
		go func(seq wire.ActionSequence) {
			defer wg.Done()
			err := playOne(ctx, ctrl, inputs, seq, seq.Actions[tick], maxDuration, resolve)
			results <- tickResult{sourceID: seq.ID, err: err}
		}(seq)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for r := range results {
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("action dispatch: source %s: %w", r.sourceID, r.err)
		}
	}
	return firstErr
}

// playOne dispatches a single source's action for the current tick. A
// pause sleeps for its own duration; a pointerMove sleeps for
// tickDuration after moving; key and button actions return as soon as
// the Controller call does. The tick as a whole still lasts until its
// slowest source finishes, since playTick waits for every source.
func playOne(ctx context.Context, ctrl controller.Controller, inputs *session.InputStateTable, seq wire.ActionSequence, item wire.ActionItem, tickDuration time.Duration, resolve ElementResolver) error {
	var kind session.SourceKind
	switch seq.Type {
	case "key":
		kind = session.KeySource
	case "pointer":
		kind = session.PointerSource
	default:
		kind = session.NullSource
	}
	state := inputs.GetOrCreate(seq.ID, kind)
	if seq.Type == "pointer" && seq.Pointer != nil {
		state.PointerType = seq.Pointer.PointerType
	}

	switch item.Type {
	case "pause":
		return sleepCtx(ctx, time.Duration(item.Duration)*time.Millisecond)

	case "keyDown":
		if state.PressedKeys[item.Value] {
			return nil
		}
		state.PressedKeys[item.Value] = true
		inputs.PushCancel(session.CancelAction{SourceID: seq.ID, Type: "keyUp", Value: item.Value})
		return ctrl.KeyDown(ctx, item.Value)

	case "keyUp":
		if !state.PressedKeys[item.Value] {
			return nil
		}
		delete(state.PressedKeys, item.Value)
		return ctrl.KeyUp(ctx, item.Value)

	case "pointerDown":
		if state.PressedButtons[item.Button] {
			return nil
		}
		state.PressedButtons[item.Button] = true
		inputs.PushCancel(session.CancelAction{SourceID: seq.ID, Type: "pointerUp", Button: item.Button})
		return ctrl.PointerDown(ctx, controller.PointerButton(item.Button))

	case "pointerUp":
		if !state.PressedButtons[item.Button] {
			return nil
		}
		delete(state.PressedButtons, item.Button)
		return ctrl.PointerUp(ctx, controller.PointerButton(item.Button))

	case "pointerMove":
		prevX, prevY := state.X, state.Y
		var targetX, targetY float64
		var outOfBounds bool
		var err error
		switch {
		case item.Origin != nil && item.Origin.Kind == wire.OriginElement:
			handle, ok := resolve(item.Origin.Element)
			if !ok {
				return fmt.Errorf("actions: unknown element origin %q", item.Origin.Element)
			}
			outOfBounds, err = ctrl.PointerMoveToElement(ctx, handle, item.X, item.Y)
			targetX, targetY = item.X, item.Y
		case item.Origin != nil && item.Origin.Kind == wire.OriginPointer:
			targetX, targetY = prevX+item.X, prevY+item.Y
			err = ctrl.PointerMoveTo(ctx, targetX, targetY)
		default:
			targetX, targetY = item.X, item.Y
			err = ctrl.PointerMoveTo(ctx, targetX, targetY)
		}
		if err != nil {
			return err
		}
		if outOfBounds {
			return wire.NewError(wire.MoveTargetOutOfBounds, "pointer move target is out of bounds")
		}
		state.X, state.Y = targetX, targetY
		inputs.PushCancel(session.CancelAction{SourceID: seq.ID, Type: "pointerMove", X: prevX, Y: prevY})
		return sleepCtx(ctx, tickDuration)

	default:
		return fmt.Errorf("unsupported action type %q", item.Type)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
