package guard

import "net/http"

// BypassGuard short-circuits a handler with a canned response while the
// guard is active. It is meant for endpoints that are stubbed out during
// development or temporarily served from a fixture: flip Active on and
// every request gets Payload with status 200 without touching the real
// handler.
type BypassGuard struct {
	// Active enables the bypass. When false the guard is transparent.
	Active bool

	// Payload is the substitute response body, JSON-encoded as-is.
	// A nil Payload is served as JSON null.
	Payload any
}

// NewBypassGuard creates a BypassGuard with the given flag and payload.
func NewBypassGuard(active bool, payload any) *BypassGuard {
	return &BypassGuard{Active: active, Payload: payload}
}

// Wrap returns a handler that serves the substitute payload with status
// 200 while the guard is active, and otherwise delegates to next
// unchanged. The wrapped handler is closed over rather than replaced, so
// its identity is preserved for callers that hold a reference to it.
func (g *BypassGuard) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Active {
			RespondWithJSON(w, r, http.StatusOK, g.Payload)
			return
		}
		next.ServeHTTP(w, r)
	})
}
