package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"activity-ledger/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

func internalError() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Code = "internal"
	resp.Error.Message = "Internal server error"
	return resp
}

// ErrorHandler renders errors that handlers attached without writing a
// response. The most recent public error wins; anything else becomes a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		if public := c.Errors.ByType(gin.ErrorTypePublic).Last(); public != nil {
			if resp, ok := public.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		slog.ErrorContext(c.Request.Context(), "unhandled request error",
			"errors", c.Errors.String(),
			"route", c.FullPath())
		resp := internalError()
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "recovered from panic",
			"panic", recovered,
			"path", c.Request.URL.Path)
		resp := internalError()
		c.AbortWithStatusJSON(resp.Status, resp)
	})
}
