package middleware

import (
	"github.com/ErlanBelekov/shop-api/internal/access"
	"github.com/ErlanBelekov/shop-api/internal/auth"
	"github.com/ErlanBelekov/shop-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the verified subject.
const UserIDKey = "userID"

type policy interface {
	Evaluate(req access.Request) access.Result
}

// Access runs the access policy before any handler. A rejection is recorded
// with c.Error for the Errors middleware and the chain is aborted.
func Access(p policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := p.Evaluate(access.Request{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			Authorization: c.GetHeader("Authorization"),
		})
		if res.Rejected() {
			metrics.AccessDecisionsTotal.WithLabelValues("rejected").Inc()
			_ = c.Error(res.Err())
			c.Abort()
			return
		}

		req := res.Request()
		if req.Public {
			metrics.AccessDecisionsTotal.WithLabelValues("public").Inc()
			c.Next()
			return
		}

		metrics.AccessDecisionsTotal.WithLabelValues("verified").Inc()
		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), req.Identity))
		c.Set(UserIDKey, req.Identity.Subject)
		c.Next()
	}
}
