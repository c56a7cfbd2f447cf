package controller

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// RodController drives one browsing context through a single *rod.Page.
// It is only ever called from the Handler's one command goroutine (see
// the package doc), so the element handle table needs no locking beyond
// what guards against the odd stray background goroutine (the resize
// timer).
type RodController struct {
	page *rod.Page

	mu       sync.Mutex
	elements map[string]*rod.Element
	nextID   atomic.Uint64
}

// NewRodController wraps an already-opened page, owned outright by a
// single session (cmd/wdbridge opens a fresh about:blank page for each
// NewSession).
func NewRodController(page *rod.Page) *RodController {
	return &RodController{page: page, elements: make(map[string]*rod.Element)}
}

func (c *RodController) withCtx(ctx context.Context) *rod.Page {
	return c.page.Context(ctx)
}

func (c *RodController) storeElement(el *rod.Element) ElementHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := fmt.Sprintf("elem-%d", c.nextID.Add(1))
	c.elements[id] = el
	return ElementHandle{id: id}
}

func (c *RodController) resolve(h ElementHandle) (*rod.Element, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.elements[h.id]
	if !ok {
		return nil, &NotFoundError{What: "element"}
	}
	return el, nil
}

// FocusedBrowsingContext reports the page's target id once rod can
// successfully query it. The page is opened synchronously before a
// RodController is constructed, so in practice this succeeds on the
// first poll; the polling contract still holds for a Controller
// implementation where context creation genuinely races page readiness.
func (c *RodController) FocusedBrowsingContext(ctx context.Context) (string, bool, error) {
	if c.page == nil {
		return "", false, nil
	}
	if _, err := c.withCtx(ctx).Info(); err != nil {
		return "", false, nil
	}
	return string(c.page.TargetID), true, nil
}

// --- Navigation ---

func (c *RodController) LoadURL(ctx context.Context, url string) error {
	return c.withCtx(ctx).Navigate(url)
}

func (c *RodController) Refresh(ctx context.Context) error {
	return c.withCtx(ctx).Reload()
}

func (c *RodController) GoBack(ctx context.Context) error {
	return c.withCtx(ctx).NavigateBack()
}

func (c *RodController) GoForward(ctx context.Context) error {
	return c.withCtx(ctx).NavigateForward()
}

func (c *RodController) CurrentURL(ctx context.Context) (string, error) {
	info, err := c.withCtx(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (c *RodController) Title(ctx context.Context) (string, error) {
	info, err := c.withCtx(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (c *RodController) PageSource(ctx context.Context) (string, error) {
	return c.withCtx(ctx).HTML()
}

// --- Window geometry ---

func (c *RodController) WindowRect(ctx context.Context) (WindowRect, error) {
	bounds, err := c.withCtx(ctx).GetWindow()
	if err != nil {
		return WindowRect{}, err
	}
	return boundsToRect(bounds), nil
}

// SetWindowRect mirrors the original's resize handling: it issues the
// resize, then races the browser's own confirmation against a timer so
// a window manager that ignores the resize request never hangs the
// call.
func (c *RodController) SetWindowRect(ctx context.Context, rect WindowRect, resizeTimeout time.Duration) (WindowRect, error) {
	p := c.withCtx(ctx)
	bounds := &proto.BrowserBounds{
		Left:   &rect.X,
		Top:    &rect.Y,
		Width:  &rect.Width,
		Height: &rect.Height,
	}
	if err := p.SetWindow(bounds); err != nil {
		return WindowRect{}, err
	}

	type result struct {
		rect WindowRect
		err  error
	}
	done := make(chan result, 1)
	go func() {
		b, err := p.GetWindow()
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{rect: boundsToRect(b)}
	}()

	select {
	case r := <-done:
		return r.rect, r.err
	case <-time.After(resizeTimeout):
		b, err := p.GetWindow()
		if err != nil {
			return WindowRect{}, err
		}
		return boundsToRect(b), nil
	}
}

func boundsToRect(b *proto.BrowserBounds) WindowRect {
	r := WindowRect{}
	if b.Left != nil {
		r.X = *b.Left
	}
	if b.Top != nil {
		r.Y = *b.Top
	}
	if b.Width != nil {
		r.Width = *b.Width
	}
	if b.Height != nil {
		r.Height = *b.Height
	}
	return r
}

// --- Screenshot ---

func (c *RodController) Screenshot(ctx context.Context) (RGBImage, error) {
	raw, err := c.withCtx(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return RGBImage{}, fmt.Errorf("controller: screenshot: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return RGBImage{}, fmt.Errorf("controller: decode screenshot: %w", err)
	}
	return toRGB(img), nil
}

// toRGB flattens any decoded image into a tightly packed RGB
// framebuffer, discarding alpha, matching the raw RGB8 compositor
// contract the Handler's encode step expects.
func toRGB(img image.Image) RGBImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pix = append(pix, byte(r>>8), byte(g>>8), byte(b>>8))
		}
	}
	return RGBImage{Width: w, Height: h, Pix: pix}
}

// --- Element lookup ---

func (c *RodController) FindElement(ctx context.Context, strategy LocatorStrategy, value string) (ElementHandle, error) {
	handles, err := c.FindElements(ctx, strategy, value)
	if err != nil {
		return ElementHandle{}, err
	}
	if len(handles) == 0 {
		return ElementHandle{}, &NotFoundError{What: "element"}
	}
	return handles[0], nil
}

func (c *RodController) FindElements(ctx context.Context, strategy LocatorStrategy, value string) ([]ElementHandle, error) {
	p := c.withCtx(ctx)
	switch strategy {
	case CSSSelector:
		els, err := p.Elements(value)
		if err != nil {
			return nil, nil
		}
		return c.storeAll(els), nil
	case LinkText, PartialLinkText:
		html, err := p.HTML()
		if err != nil {
			return nil, err
		}
		paths, err := linkTextMatches(html, value, strategy == PartialLinkText)
		if err != nil {
			return nil, err
		}
		return c.resolvePaths(p, paths), nil
	case TagName:
		html, err := p.HTML()
		if err != nil {
			return nil, err
		}
		paths, err := tagNameMatches(html, value)
		if err != nil {
			return nil, err
		}
		return c.resolvePaths(p, paths), nil
	default:
		return nil, fmt.Errorf("controller: unsupported locator strategy %q", strategy)
	}
}

func (c *RodController) resolvePaths(p *rod.Page, paths []string) []ElementHandle {
	handles := make([]ElementHandle, 0, len(paths))
	for _, path := range paths {
		if el, err := p.Element(path); err == nil {
			handles = append(handles, c.storeElement(el))
		}
	}
	return handles
}

func (c *RodController) storeAll(els rod.Elements) []ElementHandle {
	handles := make([]ElementHandle, 0, len(els))
	for _, el := range els {
		handles = append(handles, c.storeElement(el))
	}
	return handles
}

func (c *RodController) FindElementFrom(ctx context.Context, from ElementHandle, strategy LocatorStrategy, value string) (ElementHandle, error) {
	handles, err := c.FindElementsFrom(ctx, from, strategy, value)
	if err != nil {
		return ElementHandle{}, err
	}
	if len(handles) == 0 {
		return ElementHandle{}, &NotFoundError{What: "element"}
	}
	return handles[0], nil
}

func (c *RodController) FindElementsFrom(ctx context.Context, from ElementHandle, strategy LocatorStrategy, value string) ([]ElementHandle, error) {
	parent, err := c.resolve(from)
	if err != nil {
		return nil, err
	}
	switch strategy {
	case CSSSelector:
		els, err := parent.Context(ctx).Elements(value)
		if err != nil {
			return nil, nil
		}
		return c.storeAll(els), nil
	default:
		// LinkText/PartialLinkText/TagName are only resolved against
		// the whole document snapshot; see package doc in locate.go.
		return c.FindElements(ctx, strategy, value)
	}
}

func (c *RodController) ActiveElement(ctx context.Context) (ElementHandle, error) {
	el, err := c.withCtx(ctx).ElementByJS(rod.Eval(`document.activeElement || document.body`))
	if err != nil {
		return ElementHandle{}, err
	}
	return c.storeElement(el), nil
}

// --- Element introspection ---

func (c *RodController) ElementRect(ctx context.Context, h ElementHandle) (ElementRect, error) {
	el, err := c.resolve(h)
	if err != nil {
		return ElementRect{}, err
	}
	shape, err := el.Context(ctx).Shape()
	if err != nil {
		return ElementRect{}, staleIfNotFound(err)
	}
	box := shape.Box()
	return ElementRect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (c *RodController) ElementText(ctx context.Context, h ElementHandle) (string, error) {
	el, err := c.resolve(h)
	if err != nil {
		return "", err
	}
	text, err := el.Context(ctx).Text()
	return text, staleIfNotFound(err)
}

func (c *RodController) ElementTagName(ctx context.Context, h ElementHandle) (string, error) {
	el, err := c.resolve(h)
	if err != nil {
		return "", err
	}
	res, err := el.Context(ctx).Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return "", staleIfNotFound(err)
	}
	return res.Value.Str(), nil
}

func (c *RodController) ElementAttribute(ctx context.Context, h ElementHandle, name string) (string, bool, error) {
	el, err := c.resolve(h)
	if err != nil {
		return "", false, err
	}
	attr, err := el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, staleIfNotFound(err)
	}
	if attr == nil {
		return "", false, nil
	}
	return *attr, true, nil
}

func (c *RodController) ElementProperty(ctx context.Context, h ElementHandle, name string) (any, error) {
	el, err := c.resolve(h)
	if err != nil {
		return nil, err
	}
	res, err := el.Context(ctx).Property(name)
	if err != nil {
		return nil, staleIfNotFound(err)
	}
	return res.Val(), nil
}

func (c *RodController) ElementCSSValue(ctx context.Context, h ElementHandle, name string) (string, error) {
	el, err := c.resolve(h)
	if err != nil {
		return "", err
	}
	res, err := el.Context(ctx).Eval(`(prop) => getComputedStyle(this).getPropertyValue(prop)`, name)
	if err != nil {
		return "", staleIfNotFound(err)
	}
	return res.Value.Str(), nil
}

func (c *RodController) ElementEnabled(ctx context.Context, h ElementHandle) (bool, error) {
	el, err := c.resolve(h)
	if err != nil {
		return false, err
	}
	res, err := el.Context(ctx).Eval(`() => !this.disabled`)
	if err != nil {
		return false, staleIfNotFound(err)
	}
	return res.Value.Bool(), nil
}

func (c *RodController) ElementSelected(ctx context.Context, h ElementHandle) (bool, error) {
	el, err := c.resolve(h)
	if err != nil {
		return false, err
	}
	res, err := el.Context(ctx).Eval(`() => !!(this.selected || this.checked)`)
	if err != nil {
		return false, staleIfNotFound(err)
	}
	return res.Value.Bool(), nil
}

// --- Element interaction ---

func (c *RodController) FocusElement(ctx context.Context, h ElementHandle) error {
	el, err := c.resolve(h)
	if err != nil {
		return err
	}
	return staleIfNotFound(el.Context(ctx).Focus())
}

func (c *RodController) SendKeysToElement(ctx context.Context, h ElementHandle, text string) error {
	el, err := c.resolve(h)
	if err != nil {
		return err
	}
	return staleIfNotFound(el.Context(ctx).Input(text))
}

// --- Synthetic input ---

func (c *RodController) PointerMoveTo(ctx context.Context, x, y float64) error {
	return c.withCtx(ctx).Mouse.MoveTo(proto.Point{X: x, Y: y})
}

func (c *RodController) PointerMoveToElement(ctx context.Context, h ElementHandle, offsetX, offsetY float64) (bool, error) {
	el, err := c.resolve(h)
	if err != nil {
		return false, err
	}
	shape, err := el.Context(ctx).Shape()
	if err != nil {
		return false, staleIfNotFound(err)
	}
	box := shape.Box()
	x, y := box.X+offsetX, box.Y+offsetY

	metrics, err := proto.PageGetLayoutMetrics{}.Call(c.page)
	if err == nil && metrics.CSSLayoutViewport != nil {
		vw := float64(metrics.CSSLayoutViewport.ClientWidth)
		vh := float64(metrics.CSSLayoutViewport.ClientHeight)
		if x < 0 || y < 0 || x > vw || y > vh {
			return true, nil
		}
	}
	return false, c.withCtx(ctx).Mouse.MoveTo(proto.Point{X: x, Y: y})
}

func (c *RodController) PointerDown(ctx context.Context, button PointerButton) error {
	return c.withCtx(ctx).Mouse.Down(protoButton(button), 1)
}

func (c *RodController) PointerUp(ctx context.Context, button PointerButton) error {
	return c.withCtx(ctx).Mouse.Up(protoButton(button), 1)
}

func protoButton(b PointerButton) proto.InputMouseButton {
	switch b {
	case ButtonMiddle:
		return proto.InputMouseButtonMiddle
	case ButtonRight:
		return proto.InputMouseButtonRight
	default:
		return proto.InputMouseButtonLeft
	}
}

func (c *RodController) KeyDown(ctx context.Context, value string) error {
	key, ok := resolveKey(value)
	if !ok {
		return fmt.Errorf("controller: unrecognized key value %q", value)
	}
	return c.withCtx(ctx).Keyboard.Down(key)
}

func (c *RodController) KeyUp(ctx context.Context, value string) error {
	key, ok := resolveKey(value)
	if !ok {
		return fmt.Errorf("controller: unrecognized key value %q", value)
	}
	return c.withCtx(ctx).Keyboard.Up(key)
}

// --- Script execution ---

// elementKey mirrors wire.ElementKey, the W3C web element identifier
// property name. Duplicated as a literal rather than imported, for the
// same reason Cookie above is: controller has no dependency on wire.
const elementKey = "element-6066-11e4-a52e-4f735466cecf"

// elementEncoderPrelude defines __wdEncode, a function the wrapped
// script's result is always run through before it leaves the page. It
// walks the result recursively, and whenever it finds a DOM node it
// sets it aside in window.__wdScriptElements and substitutes a plain
// marker object carrying the node's index, so the remote object the
// Eval call ultimately returns is always JSON-only. fetchScriptElement
// later pulls each set-aside node back out by index.
const elementEncoderPrelude = `
window.__wdScriptElements = [];
function __wdEncode(v, seen) {
	if (v === null || v === undefined || typeof v !== "object") {
		return v;
	}
	if (typeof Node !== "undefined" && v instanceof Node) {
		var idx = window.__wdScriptElements.length;
		window.__wdScriptElements.push(v);
		var ref = {};
		ref["` + elementKey + `"] = idx;
		return ref;
	}
	if (seen.indexOf(v) !== -1) {
		return null;
	}
	seen = seen.concat([v]);
	if (Array.isArray(v)) {
		return v.map(function(x){ return __wdEncode(x, seen); });
	}
	var out = {};
	for (var k in v) {
		if (Object.prototype.hasOwnProperty.call(v, k)) {
			out[k] = __wdEncode(v[k], seen);
		}
	}
	return out;
}
`

func (c *RodController) ExecuteScript(ctx context.Context, script string, args []any) (any, error) {
	resolvedArgs, err := c.resolveScriptArgs(args)
	if err != nil {
		return nil, err
	}
	fn := fmt.Sprintf(`function(){
		%s
		var __wdResult = (function(){ %s }).apply(this, arguments);
		return __wdEncode(__wdResult, []);
	}`, elementEncoderPrelude, script)
	res, err := c.withCtx(ctx).Eval(fn, resolvedArgs...)
	if err != nil {
		return nil, err
	}
	return c.decodeScriptResult(ctx, res.Value.Val())
}

func (c *RodController) ExecuteAsyncScript(ctx context.Context, script string, args []any, timeout *time.Duration) (any, error) {
	callCtx := ctx
	if timeout != nil {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}
	resolvedArgs, err := c.resolveScriptArgs(args)
	if err != nil {
		return nil, err
	}
	fn := fmt.Sprintf(`function(){
		%s
		var __args = Array.prototype.slice.call(arguments);
		return new Promise(function(resolve){
			__args.push(function(result){ resolve(__wdEncode(result, [])); });
			(function(){ %s }).apply(this, __args);
		});
	}`, elementEncoderPrelude, script)
	res, err := c.withCtx(callCtx).Eval(fn, resolvedArgs...)
	if err != nil {
		if callCtx.Err() != nil {
			return nil, fmt.Errorf("controller: async script timed out: %w", callCtx.Err())
		}
		return nil, err
	}
	return c.decodeScriptResult(callCtx, res.Value.Val())
}

// resolveScriptArgs walks script arguments recursively, replacing any
// W3C element reference object ({elementKey: id}) with the live
// *rod.Element it names, so go-rod binds it into the call as an object
// reference instead of marshaling it as plain JSON.
func (c *RodController) resolveScriptArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := c.resolveScriptArg(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *RodController) resolveScriptArg(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if id, ok := t[elementKey].(string); ok && len(t) == 1 {
			el, err := c.resolve(ElementHandle{id: id})
			if err != nil {
				return nil, err
			}
			return el, nil
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			rv, err := c.resolveScriptArg(vv)
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			rv, err := c.resolveScriptArg(vv)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	default:
		return v, nil
	}
}

// decodeScriptResult walks a script's (already JSON-decoded) result
// tree and replaces every __wdEncode element marker with a freshly
// stored ElementHandle, so the Handler hands clients back the same
// {elementKey: id} shape FindElement uses.
func (c *RodController) decodeScriptResult(ctx context.Context, v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if idxVal, ok := t[elementKey]; ok && len(t) == 1 {
			idx, ok := idxVal.(float64)
			if !ok {
				return nil, fmt.Errorf("controller: malformed element marker in script result")
			}
			handle, err := c.fetchScriptElement(ctx, int(idx))
			if err != nil {
				return nil, err
			}
			return map[string]any{elementKey: handle.ID()}, nil
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			rv, err := c.decodeScriptResult(ctx, vv)
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			rv, err := c.decodeScriptResult(ctx, vv)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	default:
		return v, nil
	}
}

// fetchScriptElement re-fetches the idx'th node __wdEncode set aside in
// window.__wdScriptElements as its own remote object, then wraps it
// into an *rod.Element the rest of the element table can resolve by
// id the same way a FindElement result can.
func (c *RodController) fetchScriptElement(ctx context.Context, idx int) (ElementHandle, error) {
	res, err := c.withCtx(ctx).Eval(fmt.Sprintf("function(){ return window.__wdScriptElements[%d]; }", idx))
	if err != nil {
		return ElementHandle{}, err
	}
	el, err := c.page.Context(ctx).ElementFromObject(res)
	if err != nil {
		return ElementHandle{}, err
	}
	return c.storeElement(el), nil
}

// --- Cookies ---

func (c *RodController) GetCookies(ctx context.Context) ([]Cookie, error) {
	cookies, err := c.withCtx(ctx).Cookies(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Cookie, 0, len(cookies))
	for _, ck := range cookies {
		out = append(out, fromNetworkCookie(ck))
	}
	return out, nil
}

func (c *RodController) GetCookie(ctx context.Context, name string) (Cookie, error) {
	cookies, err := c.GetCookies(ctx)
	if err != nil {
		return Cookie{}, err
	}
	for _, ck := range cookies {
		if ck.Name == name {
			return ck, nil
		}
	}
	return Cookie{}, &NotFoundError{What: "cookie"}
}

func (c *RodController) AddCookie(ctx context.Context, ck Cookie) error {
	url, err := c.CurrentURL(ctx)
	if err != nil {
		return err
	}
	param := &proto.NetworkCookieParam{
		Name:     ck.Name,
		Value:    ck.Value,
		Domain:   ck.Domain,
		Path:     ck.Path,
		Secure:   ck.Secure,
		HTTPOnly: ck.HTTPOnly,
		URL:      url,
	}
	if ck.Expiry != nil {
		param.Expires = proto.TimeSinceEpoch(*ck.Expiry)
	}
	return c.withCtx(ctx).SetCookies([]*proto.NetworkCookieParam{param})
}

func (c *RodController) DeleteCookies(ctx context.Context, name string) error {
	p := c.withCtx(ctx)
	if name == "" {
		return proto.NetworkClearBrowserCookies{}.Call(p)
	}
	url, err := c.CurrentURL(ctx)
	if err != nil {
		return err
	}
	return proto.NetworkDeleteCookies{Name: name, URL: url}.Call(p)
}

func fromNetworkCookie(ck *proto.NetworkCookie) Cookie {
	expiry := int64(ck.Expires)
	return Cookie{
		Name:     ck.Name,
		Value:    ck.Value,
		Domain:   ck.Domain,
		Path:     ck.Path,
		Secure:   ck.Secure,
		HTTPOnly: ck.HTTPOnly,
		Expiry:   &expiry,
	}
}

func (c *RodController) Close(ctx context.Context) error {
	return c.page.Close()
}

// staleIfNotFound turns a rod "element not in DOM" style error into the
// package's NotFoundError so the Handler can map it to
// StaleElementReference, while passing through anything else (and nil)
// unchanged.
func staleIfNotFound(err error) error {
	if err == nil {
		return nil
	}
	if err == context.Canceled || err == context.DeadlineExceeded {
		return err
	}
	return &NotFoundError{What: "element"}
}
