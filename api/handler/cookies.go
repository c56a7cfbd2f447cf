package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func GetCookies(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies, err := h.GetCookies(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.CookiesResponse{Cookies: cookies})
	}
}

func GetCookie(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := h.GetCookie(c.Request.Context(), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.CookieResponse{Cookie: cookie})
	}
}

func AddCookie(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Cookie wire.AddCookieParameters `json:"cookie"`
		}
		if !bind(c, &body) {
			return
		}
		p := body.Cookie
		cookie := wire.Cookie{
			Name:     p.Name,
			Value:    p.Value,
			Path:     p.Path,
			Domain:   p.Domain,
			Expiry:   p.Expiry,
			Secure:   p.Secure,
			HTTPOnly: p.HTTPOnly,
			SameSite: p.SameSite,
		}
		if err := h.AddCookie(c.Request.Context(), cookie); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func DeleteCookie(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.DeleteCookies(c.Request.Context(), c.Param("name")); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func DeleteAllCookies(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.DeleteCookies(c.Request.Context(), ""); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}
