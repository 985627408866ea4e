package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/shop-api/internal/auth"
	ctxlog "github.com/ErlanBelekov/shop-api/internal/log"
	"github.com/ErlanBelekov/shop-api/internal/requestid"
)

func TestContextHandler_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New("production", slog.LevelInfo, &buf)

	claims := &auth.Claims{}
	claims.Subject = "user-7"
	ctx := requestid.WithRequestID(context.Background(), "req-9")
	ctx = auth.WithClaims(ctx, claims)

	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if rec["request_id"] != "req-9" {
		t.Errorf("request_id = %v, want req-9", rec["request_id"])
	}
	if rec["user_id"] != "user-7" {
		t.Errorf("user_id = %v, want user-7", rec["user_id"])
	}
}

func TestContextHandler_PublicRequestHasNoUser(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New("production", slog.LevelInfo, &buf)

	logger.InfoContext(context.Background(), "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := rec["user_id"]; ok {
		t.Errorf("unexpected user_id in %v", rec)
	}
	if _, ok := rec["request_id"]; ok {
		t.Errorf("unexpected request_id in %v", rec)
	}
}
