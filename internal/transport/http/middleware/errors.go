package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/ErlanBelekov/shop-api/internal/apperror"
	"github.com/ErlanBelekov/shop-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Errors writes the one error response of a request after the rest of the
// chain has returned. Handlers record failures with c.Error and return
// without writing; the last recorded error wins.
func Errors(n *apperror.Normalizer, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "errors")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		writeError(c, n, logger, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into a ServerFault response through the same
// normalizer.
func Recovery(n *apperror.Normalizer, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "recovery")
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"stack", string(debug.Stack()),
		)
		if c.Writer.Written() {
			c.Abort()
			return
		}
		writeError(c, n, logger, fmt.Errorf("panic: %v", recovered))
	})
}

func writeError(c *gin.Context, n *apperror.Normalizer, logger *slog.Logger, err error) {
	e := n.Normalize(err)
	metrics.NormalizedErrorsTotal.WithLabelValues(string(e.Kind)).Inc()

	switch e.Kind {
	case apperror.KindServerFault:
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	default:
		logger.DebugContext(c.Request.Context(), "request rejected",
			"kind", e.Kind,
			"status", e.Status,
			"error", err,
		)
	}

	c.AbortWithStatusJSON(e.Status, e)
}
