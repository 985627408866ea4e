package health

import (
	"context"
	"encoding/json"
	"net/http"
)

// Probe serves a check as JSON, answering 503 unless it reports "up".
func Probe(check func(context.Context) HealthResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if res.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}
