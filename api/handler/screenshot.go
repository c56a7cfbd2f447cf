package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func TakeScreenshot(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		png, err := h.TakeScreenshot(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: png})
	}
}

func TakeElementScreenshot(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		png, err := h.TakeElementScreenshot(c.Request.Context(), c.Param("elementId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: png})
	}
}
