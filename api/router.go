// Package api wires the WebDriver HTTP routes onto the command handler.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/api/handler"
	"github.com/use-agent/wdbridge/api/middleware"
	"github.com/use-agent/wdbridge/config"
	wdhandler "github.com/use-agent/wdbridge/handler"
)

// NewRouter creates a configured Gin engine serving the W3C WebDriver
// HTTP endpoint.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Session: Auth (if enabled) → RateLimit (if enabled)
//
// /status is intentionally outside auth so a test runner can poll
// readiness before it has (or needs) a session.
func NewRouter(h *wdhandler.Handler, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.GET("/status", handler.Status(h))

	session := r.Group("/session")
	if cfg.Auth.Enabled {
		session.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	if cfg.RateLimit.Enabled {
		session.Use(middleware.RateLimit(cfg.RateLimit))
	}

	session.POST("", handler.NewSession(h))

	s := session.Group("/:sessionId")
	s.DELETE("", handler.DeleteSession(h))

	s.POST("/url", handler.Get(h))
	s.GET("/url", handler.CurrentURL(h))
	s.POST("/back", handler.GoBack(h))
	s.POST("/forward", handler.GoForward(h))
	s.POST("/refresh", handler.Refresh(h))
	s.GET("/title", handler.Title(h))
	s.GET("/source", handler.PageSource(h))

	s.GET("/window", handler.WindowHandle(h))
	s.DELETE("/window", handler.DeleteSession(h))
	s.POST("/window", handler.SwitchToWindow(h))
	s.GET("/window/handles", handler.WindowHandles(h))
	s.GET("/window/rect", handler.GetWindowRect(h))
	s.POST("/window/rect", handler.SetWindowRect(h))

	s.POST("/frame", handler.SwitchToFrame(h))
	s.POST("/frame/parent", handler.SwitchToParentFrame(h))

	s.GET("/timeouts", handler.GetTimeouts(h))
	s.POST("/timeouts", handler.SetTimeouts(h))

	s.POST("/element", handler.FindElement(h))
	s.POST("/elements", handler.FindElements(h))
	s.GET("/element/active", handler.ActiveElement(h))

	el := s.Group("/element/:elementId")
	el.POST("/element", handler.FindElementFromElement(h))
	el.POST("/elements", handler.FindElementsFromElement(h))
	el.GET("/rect", handler.ElementRect(h))
	el.GET("/text", handler.ElementText(h))
	el.GET("/name", handler.ElementTagName(h))
	el.GET("/attribute/:name", handler.ElementAttribute(h))
	el.GET("/property/:name", handler.ElementProperty(h))
	el.GET("/css/:propertyName", handler.ElementCSSValue(h))
	el.GET("/enabled", handler.ElementEnabled(h))
	el.GET("/selected", handler.ElementSelected(h))
	el.POST("/click", handler.ElementClick(h))
	el.POST("/value", handler.ElementSendKeys(h))
	el.GET("/screenshot", handler.TakeElementScreenshot(h))

	s.POST("/execute/sync", handler.ExecuteScript(h))
	s.POST("/execute/async", handler.ExecuteAsyncScript(h))

	s.GET("/cookie", handler.GetCookies(h))
	s.GET("/cookie/:name", handler.GetCookie(h))
	s.POST("/cookie", handler.AddCookie(h))
	s.DELETE("/cookie/:name", handler.DeleteCookie(h))
	s.DELETE("/cookie", handler.DeleteAllCookies(h))

	s.POST("/actions", handler.PerformActions(h))
	s.DELETE("/actions", handler.ReleaseActions(h))

	s.POST("/alert/dismiss", handler.DismissAlert(h))

	s.GET("/screenshot", handler.TakeScreenshot(h))

	// Servo-style extension routes for the non-standard browser
	// preference store this bridge also exposes.
	s.POST("/servo/prefs/get", handler.GetPrefs(h))
	s.POST("/servo/prefs/set", handler.SetPrefs(h))
	s.POST("/servo/prefs/reset", handler.ResetPrefs(h))

	return r
}
