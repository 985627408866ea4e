package health_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/shop-api/internal/health"
)

func TestProbe_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		result   health.HealthResult
		wantCode int
	}{
		{"up", health.HealthResult{Status: "up"}, http.StatusOK},
		{"down", health.HealthResult{Status: "down", Checks: map[string]health.CheckResult{
			"postgres": {Status: "down", Error: "refused"},
		}}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.Probe(func(context.Context) health.HealthResult { return tt.result })
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var got health.HealthResult
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Status != tt.result.Status {
				t.Errorf("body status = %q", got.Status)
			}
		})
	}
}
