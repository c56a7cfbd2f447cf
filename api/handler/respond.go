// Package handler adapts gin routes onto the handler.Handler WebDriver
// command surface: decode the request body into a wire parameter type,
// call the matching Handler method, and translate the result back into
// the WebDriver wire envelope.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/wdbridge/wire"
)

// ok writes a successful WebDriver response body.
func ok(c *gin.Context, r wire.Response) {
	c.JSON(http.StatusOK, wire.Envelope(r))
}

// fail writes a WebDriver error response, deriving the HTTP status
// from the error's taxonomy entry.
func fail(c *gin.Context, err *wire.Error) {
	c.JSON(wire.HTTPStatus(err.Status), err.Body())
}

// bind decodes the request body into dst, writing InvalidArgument and
// returning false on failure so callers can bail out in one line.
func bind(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, wire.WrapError(wire.InvalidArgument, "invalid request body", err))
		return false
	}
	return true
}
