package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func Get(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.GetParameters
		if !bind(c, &p) {
			return
		}
		if err := h.Get(c.Request.Context(), p.URL); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func Refresh(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Refresh(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func GoBack(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.GoBack(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func GoForward(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.GoForward(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func CurrentURL(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := h.CurrentURL(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: url})
	}
}

func Title(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		title, err := h.Title(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: title})
	}
}

func PageSource(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		src, err := h.PageSource(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: src})
	}
}

func WindowHandle(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, err := h.WindowHandle()
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: handle})
	}
}

func WindowHandles(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		handles, err := h.WindowHandles()
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: handles})
	}
}

func SwitchToWindow(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.SwitchToWindowParameters
		if !bind(c, &p) {
			return
		}
		if err := h.SwitchToWindow(p.Handle); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func GetWindowRect(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		rect, err := h.WindowRect(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, rect)
	}
}

func SetWindowRect(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.WindowRectParameters
		if !bind(c, &p) {
			return
		}
		x, y, width, height := 0, 0, 0, 0
		if p.X != nil {
			x = *p.X
		}
		if p.Y != nil {
			y = *p.Y
		}
		if p.Width != nil {
			width = *p.Width
		}
		if p.Height != nil {
			height = *p.Height
		}
		rect, err := h.SetWindowRect(c.Request.Context(), x, y, width, height)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, rect)
	}
}
