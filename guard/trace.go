package guard

import (
	"log/slog"
	"net/http"
)

// Trace is middleware that assigns a trace ID to every request and logs
// the request start. Apply it early in the middleware chain so all later
// handlers and error responses carry the same trace ID.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetTraceID(r.Context())
		traceID := GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
