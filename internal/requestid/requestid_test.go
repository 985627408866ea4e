package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErlanBelekov/shop-api/internal/requestid"
	"github.com/google/uuid"
)

func TestFromHeader(t *testing.T) {
	if got := requestid.FromHeader("abc-123"); got != "abc-123" {
		t.Errorf("FromHeader kept = %q, want abc-123", got)
	}

	for _, bad := range []string{"", "has space", "new\nline", strings.Repeat("x", 65)} {
		got := requestid.FromHeader(bad)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("FromHeader(%q) = %q, want generated uuid", bad, got)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := requestid.WithRequestID(context.Background(), "req-1")
	if got := requestid.FromContext(ctx); got != "req-1" {
		t.Errorf("FromContext = %q, want req-1", got)
	}
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("FromContext(empty) = %q, want empty", got)
	}
}
