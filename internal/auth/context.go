package auth

import "context"

type ctxKey struct{}

// WithClaims returns a copy of ctx carrying the verified identity.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the verified identity, or nil for public requests.
func FromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}

// UserID returns the subject of the verified identity, or "".
func UserID(ctx context.Context) string {
	if c := FromContext(ctx); c != nil {
		return c.Subject
	}
	return ""
}
