package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func GetTimeouts(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := h.GetTimeouts()
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, t)
	}
}

func SetTimeouts(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.TimeoutsParameters
		if !bind(c, &p) {
			return
		}
		if err := h.SetTimeouts(p); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}
