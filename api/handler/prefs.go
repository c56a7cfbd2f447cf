package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func GetPrefs(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.GetPrefsParameters
		if !bind(c, &p) {
			return
		}
		ok(c, wire.PrefsResponse{Prefs: h.GetPrefs(p.Prefs)})
	}
}

func SetPrefs(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.SetPrefsParameters
		if !bind(c, &p) {
			return
		}
		h.SetPrefs(p.Prefs)
		ok(c, wire.Void{})
	}
}

func ResetPrefs(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.GetPrefsParameters
		if !bind(c, &p) {
			return
		}
		h.ResetPrefs(p.Prefs)
		ok(c, wire.PrefsResponse{Prefs: h.GetPrefs(p.Prefs)})
	}
}
