package handler

import (
	"context"
	"errors"
	"time"

	"github.com/use-agent/wdbridge/wire"
)

func (h *Handler) ExecuteScript(ctx context.Context, script string, args []any) (any, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}
	v, err := ctrl.ExecuteScript(ctx, script, args)
	if err != nil {
		return nil, postprocessScriptError(err)
	}
	return v, nil
}

func (h *Handler) ExecuteAsyncScript(ctx context.Context, script string, args []any) (any, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ctrl, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}

	var timeout *time.Duration
	if sess.ScriptTimeoutMs != nil {
		d := time.Duration(*sess.ScriptTimeoutMs) * time.Millisecond
		timeout = &d
	}
	v, err := ctrl.ExecuteAsyncScript(ctx, script, args, timeout)
	if err != nil {
		return nil, postprocessScriptError(err)
	}
	return v, nil
}

// postprocessScriptError maps a script-execution failure to the W3C
// error it should surface as: a context deadline becomes Timeout,
// everything else is reported as JavascriptError so the caller sees
// the script's own failure rather than a transport-level UnknownError.
func postprocessScriptError(err error) *wire.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return wire.NewError(wire.Timeout, "script timed out")
	}
	return wire.WrapError(wire.JavascriptError, "script execution failed", err)
}
