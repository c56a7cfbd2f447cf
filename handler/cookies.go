package handler

import (
	"context"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/wire"
)

func (h *Handler) GetCookies(ctx context.Context) ([]wire.Cookie, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return nil, werr
	}
	cookies, err := ctrl.GetCookies(ctx)
	if err != nil {
		return nil, wire.WrapError(wire.UnknownError, "failed to read cookies", err)
	}
	out := make([]wire.Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, toWireCookie(c))
	}
	return out, nil
}

func (h *Handler) GetCookie(ctx context.Context, name string) (wire.Cookie, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return wire.Cookie{}, werr
	}
	c, err := ctrl.GetCookie(ctx, name)
	if err != nil {
		return wire.Cookie{}, wire.NewError(wire.NoSuchElement, "no such cookie")
	}
	return toWireCookie(c), nil
}

func (h *Handler) AddCookie(ctx context.Context, c wire.Cookie) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if c.Domain != nil && *c.Domain == "" {
		return wire.NewError(wire.InvalidCookieDomain, "cookie domain is invalid")
	}
	if err := ctrl.AddCookie(ctx, toControllerCookie(c)); err != nil {
		return wire.WrapError(wire.UnableToSetCookie, "failed to set cookie", err)
	}
	return nil
}

func (h *Handler) DeleteCookies(ctx context.Context, name string) *wire.Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return werr
	}
	if err := ctrl.DeleteCookies(ctx, name); err != nil {
		return wire.WrapError(wire.UnknownError, "failed to delete cookies", err)
	}
	return nil
}

func toWireCookie(c controller.Cookie) wire.Cookie {
	out := wire.Cookie{Name: c.Name, Value: c.Value, Secure: c.Secure, HTTPOnly: c.HTTPOnly, Expiry: c.Expiry}
	if c.Path != "" {
		out.Path = &c.Path
	}
	if c.Domain != "" {
		out.Domain = &c.Domain
	}
	if c.SameSite != "" {
		out.SameSite = &c.SameSite
	}
	return out
}

func toControllerCookie(c wire.Cookie) controller.Cookie {
	out := controller.Cookie{Name: c.Name, Value: c.Value, Secure: c.Secure, HTTPOnly: c.HTTPOnly, Expiry: c.Expiry}
	if c.Path != nil {
		out.Path = *c.Path
	}
	if c.Domain != nil {
		out.Domain = *c.Domain
	}
	if c.SameSite != nil {
		out.SameSite = *c.SameSite
	}
	return out
}
