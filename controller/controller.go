// Package controller defines the message surface the Handler uses to
// drive the underlying browser engine, and a go-rod backed
// implementation of it.
//
// The split mirrors the original bridge's two channel kinds: a
// long-lived "controller channel" for context-level operations
// (navigate, resize, screenshot) that the Handler fires and optionally
// waits on, and a fresh "script channel" pair per in-page query
// (find element, read an attribute, run script) whose reply is
// consumed exactly once. Go has no need for Rust's IPC machinery, so
// both are modeled directly as interface methods backed by a single
// goroutine-confined *rod.Page; callers get the same serialized-access
// guarantee a channel would have given them because Controller method
// calls are only ever issued from the Handler's single command
// goroutine (see spec's Scheduling model).
package controller

import (
	"context"
	"time"
)

// WindowRect is a window position and size.
type WindowRect struct {
	X, Y, Width, Height int
}

// ElementRect is an element's bounding rectangle.
type ElementRect struct {
	X, Y, Width, Height float64
}

// Cookie mirrors the WebDriver cookie shape, independent of the wire
// package so controller has no dependency on the HTTP layer.
type Cookie struct {
	Name     string
	Value    string
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	Expiry   *int64
	SameSite string
}

// LocatorStrategy is the subset of W3C locator strategies Controller
// implements natively or via the goquery snapshot fallback.
type LocatorStrategy string

const (
	CSSSelector     LocatorStrategy = "css selector"
	LinkText        LocatorStrategy = "link text"
	PartialLinkText LocatorStrategy = "partial link text"
	TagName         LocatorStrategy = "tag name"
)

// PointerButton identifies a mouse button in the W3C numbering (0 = left,
// 1 = middle, 2 = right).
type PointerButton int

const (
	ButtonLeft   PointerButton = 0
	ButtonMiddle PointerButton = 1
	ButtonRight  PointerButton = 2
)

// NotFoundError is returned by element lookups (and element-scoped calls
// against a handle the page no longer has) when the target does not
// exist. Controller implementations wrap it; the Handler maps it to
// NoSuchElement or StaleElementReference depending on which command
// produced it.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

// Controller is the full surface the Handler drives a browsing context
// through. A Controller instance is bound to exactly one top-level
// browsing context (one Session); the Handler creates one per
// NewSession and discards it on DeleteSession.
type Controller interface {
	// FocusedBrowsingContext reports the id of the top-level browsing
	// context bound to this Controller once it is ready to receive
	// commands (ok == false while it is not yet ready). NewSession polls
	// this at a fixed interval up to a deadline, per spec's "acquiring
	// the focused top-level context" algorithm, rather than assuming
	// readiness the instant the Controller value is constructed.
	FocusedBrowsingContext(ctx context.Context) (id string, ok bool, err error)

	// Navigation.
	LoadURL(ctx context.Context, url string) error
	Refresh(ctx context.Context) error
	GoBack(ctx context.Context) error
	GoForward(ctx context.Context) error
	CurrentURL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	PageSource(ctx context.Context) (string, error)

	// Window geometry. SetWindowRect races a timer the way the
	// original resize handling did: if the browser never reports the
	// requested size back, the call still returns after resizeTimeout
	// rather than hanging forever.
	WindowRect(ctx context.Context) (WindowRect, error)
	SetWindowRect(ctx context.Context, rect WindowRect, resizeTimeout time.Duration) (WindowRect, error)

	// Screenshot returns a decoded RGB framebuffer (width, height,
	// tightly packed 3-byte-per-pixel rows), not a pre-encoded image,
	// so the Handler performs its own RGB-to-PNG encode exactly as the
	// original compositor contract required.
	Screenshot(ctx context.Context) (img RGBImage, err error)

	// Element lookup. FindElement/FindElements search the whole
	// document; FindElementFrom/FindElementsFrom search within an
	// existing element's subtree for CSSSelector. RodController resolves
	// LinkText, PartialLinkText and TagName against the whole document
	// even in the From variants, so those results are not limited to the
	// subtree.
	FindElement(ctx context.Context, strategy LocatorStrategy, value string) (ElementHandle, error)
	FindElements(ctx context.Context, strategy LocatorStrategy, value string) ([]ElementHandle, error)
	FindElementFrom(ctx context.Context, from ElementHandle, strategy LocatorStrategy, value string) (ElementHandle, error)
	FindElementsFrom(ctx context.Context, from ElementHandle, strategy LocatorStrategy, value string) ([]ElementHandle, error)
	ActiveElement(ctx context.Context) (ElementHandle, error)

	// Element introspection.
	ElementRect(ctx context.Context, el ElementHandle) (ElementRect, error)
	ElementText(ctx context.Context, el ElementHandle) (string, error)
	ElementTagName(ctx context.Context, el ElementHandle) (string, error)
	ElementAttribute(ctx context.Context, el ElementHandle, name string) (string, bool, error)
	ElementProperty(ctx context.Context, el ElementHandle, name string) (any, error)
	ElementCSSValue(ctx context.Context, el ElementHandle, name string) (string, error)
	ElementEnabled(ctx context.Context, el ElementHandle) (bool, error)
	ElementSelected(ctx context.Context, el ElementHandle) (bool, error)

	// Element interaction.
	FocusElement(ctx context.Context, el ElementHandle) error
	SendKeysToElement(ctx context.Context, el ElementHandle, text string) error

	// Synthetic input, used both by element click (a short pointer
	// sequence the Handler builds itself) and by the actions package's
	// tick dispatcher.
	PointerMoveTo(ctx context.Context, x, y float64) error
	PointerMoveToElement(ctx context.Context, el ElementHandle, offsetX, offsetY float64) (outOfBounds bool, err error)
	PointerDown(ctx context.Context, button PointerButton) error
	PointerUp(ctx context.Context, button PointerButton) error
	KeyDown(ctx context.Context, value string) error
	KeyUp(ctx context.Context, value string) error

	// Script execution. args and the return value are plain
	// JSON-compatible values (string/float64/bool/nil/[]any/map[string]any),
	// except that any value at any depth shaped like a web element
	// reference ({"element-6066-11e4-a52e-4f735466cecf": id}) is bound
	// to (args) or extracted from (the result) a live DOM node rather
	// than passed through as an opaque JSON object.
	ExecuteScript(ctx context.Context, script string, args []any) (any, error)
	ExecuteAsyncScript(ctx context.Context, script string, args []any, timeout *time.Duration) (any, error)

	// Cookies.
	GetCookies(ctx context.Context) ([]Cookie, error)
	GetCookie(ctx context.Context, name string) (Cookie, error)
	AddCookie(ctx context.Context, c Cookie) error
	DeleteCookies(ctx context.Context, name string) error

	// Close releases the underlying page. Called from DeleteSession.
	Close(ctx context.Context) error
}

// ElementHandle is an opaque reference to an element inside a
// Controller's browsing context. The zero value is never valid; obtain
// one only from FindElement(s) or ActiveElement.
type ElementHandle struct {
	id string
}

// ID returns the opaque identifier the Handler exposes to clients as
// the WebDriver web element reference.
func (h ElementHandle) ID() string { return h.id }

// IsZero reports whether h was never assigned a concrete element.
func (h ElementHandle) IsZero() bool { return h.id == "" }

// RGBImage is a decoded, uncompressed framebuffer snapshot.
type RGBImage struct {
	Width, Height int
	// Pix holds Width*Height*3 bytes, row-major, 3 bytes (R,G,B) per pixel.
	Pix []byte
}
