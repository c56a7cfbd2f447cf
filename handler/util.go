package handler

import (
	"context"
	"time"

	"github.com/use-agent/wdbridge/controller"
)

// withTimeoutMs derives a child context bounded by ms milliseconds. A
// zero or negative value means "no timeout", matching the WebDriver
// convention that a 0 pageLoad timeout disables the bound.
func withTimeoutMs(parent context.Context, ms int64) (context.Context, context.CancelFunc) {
	if ms <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, time.Duration(ms)*time.Millisecond)
}

func toControllerRect(x, y, width, height int) controller.WindowRect {
	return controller.WindowRect{X: x, Y: y, Width: width, Height: height}
}
