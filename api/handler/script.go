package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func ExecuteScript(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.JavascriptCommandParameters
		if !bind(c, &p) {
			return
		}
		result, err := h.ExecuteScript(c.Request.Context(), p.Script, p.Args)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: result})
	}
}

func ExecuteAsyncScript(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.JavascriptCommandParameters
		if !bind(c, &p) {
			return
		}
		result, err := h.ExecuteAsyncScript(c.Request.Context(), p.Script, p.Args)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: result})
	}
}
