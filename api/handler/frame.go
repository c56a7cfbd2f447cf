package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func SwitchToFrame(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.SwitchToFrameParameters
		if !bind(c, &p) {
			return
		}
		if err := h.SwitchToFrame(p); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func SwitchToParentFrame(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.SwitchToParentFrame(); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func DismissAlert(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.DismissAlert(); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}
