package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func NewSession(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if !bind(c, &body) {
			return
		}
		resp, err := h.NewSession(c.Request.Context(), body)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, resp)
	}
}

func DeleteSession(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.DeleteSession(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.DeleteSession{})
	}
}

func Status(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready, message := h.Status()
		ok(c, wire.Value{V: map[string]any{"ready": ready, "message": message}})
	}
}
