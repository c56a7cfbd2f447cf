package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func PerformActions(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.ActionsParameters
		if !bind(c, &p) {
			return
		}
		if err := h.PerformActions(c.Request.Context(), p.Actions); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func ReleaseActions(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.ReleaseActions(c.Request.Context()); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}
