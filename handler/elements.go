package handler

import (
	"context"
	"time"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/wire"
)

func toControllerLocator(using wire.LocatorStrategy) controller.LocatorStrategy {
	switch using {
	case wire.LinkText:
		return controller.LinkText
	case wire.PartialLinkText:
		return controller.PartialLinkText
	case wire.TagName:
		return controller.TagName
	default:
		return controller.CSSSelector
	}
}

func (h *Handler) checkLocator(using wire.LocatorStrategy) *wire.Error {
	if !wire.SupportedLocator(using) {
		return wire.NewError(wire.UnsupportedOperation, "Unsupported locator strategy")
	}
	return nil
}

func (h *Handler) FindElement(ctx context.Context, using wire.LocatorStrategy, value string) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if werr := h.checkLocator(using); werr != nil {
		return "", werr
	}
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	el, err := ctrl.FindElement(ctx, toControllerLocator(using), value)
	if err != nil {
		return "", wire.NewError(wire.NoSuchElement, "no such element")
	}
	return h.storeElement(el), nil
}

func (h *Handler) FindElements(ctx context.Context, using wire.LocatorStrategy, value string) ([]string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if werr := h.checkLocator(using); werr != nil {
		return nil, werr
	}
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}
	els, err := ctrl.FindElements(ctx, toControllerLocator(using), value)
	if err != nil {
		return nil, wire.WrapError(wire.UnknownError, "find elements failed", err)
	}
	ids := make([]string, 0, len(els))
	for _, el := range els {
		ids = append(ids, h.storeElement(el))
	}
	return ids, nil
}

func (h *Handler) FindElementFromElement(ctx context.Context, fromID string, using wire.LocatorStrategy, value string) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if werr := h.checkLocator(using); werr != nil {
		return "", werr
	}
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	from, werr := h.resolveElement(fromID)
	if werr != nil {
		return "", werr
	}
	el, err := ctrl.FindElementFrom(ctx, from, toControllerLocator(using), value)
	if err != nil {
		return "", wire.NewError(wire.NoSuchElement, "no such element")
	}
	return h.storeElement(el), nil
}

func (h *Handler) FindElementsFromElement(ctx context.Context, fromID string, using wire.LocatorStrategy, value string) ([]string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if werr := h.checkLocator(using); werr != nil {
		return nil, werr
	}
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}
	from, werr := h.resolveElement(fromID)
	if werr != nil {
		return nil, werr
	}
	els, err := ctrl.FindElementsFrom(ctx, from, toControllerLocator(using), value)
	if err != nil {
		return nil, wire.WrapError(wire.UnknownError, "find elements failed", err)
	}
	ids := make([]string, 0, len(els))
	for _, el := range els {
		ids = append(ids, h.storeElement(el))
	}
	return ids, nil
}

func (h *Handler) ActiveElement(ctx context.Context) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	el, err := ctrl.ActiveElement(ctx)
	if err != nil {
		return "", wire.NewError(wire.NoSuchElement, "no such element")
	}
	return h.storeElement(el), nil
}

func (h *Handler) ElementRect(ctx context.Context, id string) (wire.ElementRect, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return wire.ElementRect{}, werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return wire.ElementRect{}, werr
	}
	r, err := ctrl.ElementRect(ctx, el)
	if err != nil {
		return wire.ElementRect{}, staleOrUnknown(err)
	}
	return wire.ElementRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, nil
}

func (h *Handler) ElementText(ctx context.Context, id string) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return "", werr
	}
	text, err := ctrl.ElementText(ctx, el)
	if err != nil {
		return "", staleOrUnknown(err)
	}
	return text, nil
}

func (h *Handler) ElementTagName(ctx context.Context, id string) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return "", werr
	}
	tag, err := ctrl.ElementTagName(ctx, el)
	if err != nil {
		return "", staleOrUnknown(err)
	}
	return tag, nil
}

func (h *Handler) ElementAttribute(ctx context.Context, id, name string) (string, bool, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", false, werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return "", false, werr
	}
	v, present, err := ctrl.ElementAttribute(ctx, el, name)
	if err != nil {
		return "", false, staleOrUnknown(err)
	}
	return v, present, nil
}

func (h *Handler) ElementProperty(ctx context.Context, id, name string) (any, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return nil, werr
	}
	v, err := ctrl.ElementProperty(ctx, el, name)
	if err != nil {
		return nil, staleOrUnknown(err)
	}
	return v, nil
}

func (h *Handler) ElementCSSValue(ctx context.Context, id, name string) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return "", werr
	}
	v, err := ctrl.ElementCSSValue(ctx, el, name)
	if err != nil {
		return "", staleOrUnknown(err)
	}
	return v, nil
}

func (h *Handler) ElementEnabled(ctx context.Context, id string) (bool, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return false, werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return false, werr
	}
	v, err := ctrl.ElementEnabled(ctx, el)
	if err != nil {
		return false, staleOrUnknown(err)
	}
	return v, nil
}

func (h *Handler) ElementSelected(ctx context.Context, id string) (bool, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return false, werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return false, werr
	}
	v, err := ctrl.ElementSelected(ctx, el)
	if err != nil {
		return false, staleOrUnknown(err)
	}
	return v, nil
}

// ElementSendKeys focuses the element and then sends it the given
// text, as two separate Controller calls rather than one atomic
// operation. This preserves a known race from the original bridge:
// between the focus call returning and the send-keys call starting,
// the page can steal focus back (an onfocus handler, a redirect) and
// the keys land somewhere else. Fixing it would require a single
// engine-side focus-and-type primitive this bridge does not have.
func (h *Handler) ElementSendKeys(ctx context.Context, id, text string) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return werr
	}
	if err := ctrl.FocusElement(ctx, el); err != nil {
		return staleOrUnknown(err)
	}
	if err := waitFocused(ctx, ctrl, el, h.cfg.FocusPollInterval, h.cfg.FocusPollTimeout); err != nil {
		return wire.WrapError(wire.Timeout, "element never became focused", err)
	}
	if err := ctrl.SendKeysToElement(ctx, el, text); err != nil {
		return staleOrUnknown(err)
	}
	return nil
}

// waitFocused polls ElementEnabled as a cheap proxy for "the element
// still exists and the page settled" before sending keys; go-rod has
// no direct "is this the document's active element" query exposed
// through the Controller interface, so this only guards against typing
// into an already-detached element, not the focus race itself.
func waitFocused(ctx context.Context, ctrl controller.Controller, el controller.ElementHandle, interval, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := ctrl.ElementEnabled(ctx, el); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return context.DeadlineExceeded
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ElementClick synthesizes the W3C pointer-click sequence (move to the
// element, left button down, left button up) by calling the
// Controller's pointer methods directly; it adds no entry to the
// session's input state table or cancel list. A click whose target
// resolved to nothing is a no-op, matching the original's
// click-target-None behavior, rather than an error.
func (h *Handler) ElementClick(ctx context.Context, id string) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return nil // click-target-None: a no-op, not an error
	}

	outOfBounds, err := ctrl.PointerMoveToElement(ctx, el, 0, 0)
	if err != nil {
		return staleOrUnknown(err)
	}
	if outOfBounds {
		return wire.NewError(wire.MoveTargetOutOfBounds, "element click target is out of bounds")
	}
	if err := ctrl.PointerDown(ctx, controller.ButtonLeft); err != nil {
		return wire.WrapError(wire.UnknownError, "click failed", err)
	}
	if err := ctrl.PointerUp(ctx, controller.ButtonLeft); err != nil {
		return wire.WrapError(wire.UnknownError, "click failed", err)
	}
	return nil
}

// staleOrUnknown maps a Controller NotFoundError for an element lookup
// against a handle this session previously resolved to
// StaleElementReference (the element existed once but no longer does),
// and anything else to UnknownError.
func staleOrUnknown(err error) *wire.Error {
	if _, ok := err.(*controller.NotFoundError); ok {
		return wire.NewError(wire.StaleElementReference, "element is no longer attached to the DOM")
	}
	return wire.WrapError(wire.UnknownError, "element operation failed", err)
}
