package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/handler"
	"github.com/use-agent/wdbridge/wire"
)

func elementResponse(id string) wire.Value {
	return wire.Value{V: wire.ElementObject(id)}
}

func elementsResponse(ids []string) wire.Value {
	objs := make([]map[string]string, len(ids))
	for i, id := range ids {
		objs[i] = wire.ElementObject(id)
	}
	return wire.Value{V: objs}
}

func FindElement(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.LocatorParameters
		if !bind(c, &p) {
			return
		}
		id, err := h.FindElement(c.Request.Context(), p.Using, p.Value)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, elementResponse(id))
	}
}

func FindElements(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.LocatorParameters
		if !bind(c, &p) {
			return
		}
		ids, err := h.FindElements(c.Request.Context(), p.Using, p.Value)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, elementsResponse(ids))
	}
}

func FindElementFromElement(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.LocatorParameters
		if !bind(c, &p) {
			return
		}
		id, err := h.FindElementFromElement(c.Request.Context(), c.Param("elementId"), p.Using, p.Value)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, elementResponse(id))
	}
}

func FindElementsFromElement(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.LocatorParameters
		if !bind(c, &p) {
			return
		}
		ids, err := h.FindElementsFromElement(c.Request.Context(), c.Param("elementId"), p.Using, p.Value)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, elementsResponse(ids))
	}
}

func ActiveElement(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := h.ActiveElement(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, elementResponse(id))
	}
}

func ElementRect(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		rect, err := h.ElementRect(c.Request.Context(), c.Param("elementId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, rect)
	}
}

func ElementText(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		text, err := h.ElementText(c.Request.Context(), c.Param("elementId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: text})
	}
}

func ElementTagName(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, err := h.ElementTagName(c.Request.Context(), c.Param("elementId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: name})
	}
}

func ElementAttribute(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, present, err := h.ElementAttribute(c.Request.Context(), c.Param("elementId"), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		if !present {
			ok(c, wire.Value{V: nil})
			return
		}
		ok(c, wire.Value{V: value})
	}
}

func ElementProperty(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := h.ElementProperty(c.Request.Context(), c.Param("elementId"), c.Param("name"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: value})
	}
}

func ElementCSSValue(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := h.ElementCSSValue(c.Request.Context(), c.Param("elementId"), c.Param("propertyName"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: value})
	}
}

func ElementEnabled(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		enabled, err := h.ElementEnabled(c.Request.Context(), c.Param("elementId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: enabled})
	}
}

func ElementSelected(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		selected, err := h.ElementSelected(c.Request.Context(), c.Param("elementId"))
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Value{V: selected})
	}
}

func ElementSendKeys(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p wire.SendKeysParameters
		if !bind(c, &p) {
			return
		}
		if err := h.ElementSendKeys(c.Request.Context(), c.Param("elementId"), p.Text); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}

func ElementClick(h *handler.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.ElementClick(c.Request.Context(), c.Param("elementId")); err != nil {
			fail(c, err)
			return
		}
		ok(c, wire.Void{})
	}
}
