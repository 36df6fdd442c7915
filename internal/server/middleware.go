package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	applog "folio/internal/log"
)

const requestIDHeader = "X-Request-ID"

// withRequestID tags every request with an id, reusing the caller's when
// present, so that log lines of one request can be correlated.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := applog.WithRequestID(r.Context(), id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		applog.Debug(ctx, "request served", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
