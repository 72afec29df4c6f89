package guard

import "net/http"

// APIKeyHeader is the request header carrying the client's API key.
const APIKeyHeader = "X-API-Key"

// APIKeyGuard rejects requests whose X-API-Key header does not exactly
// match the expected key. The comparison is a verbatim string equality:
// no normalization, no constant-time comparison. An empty Expected value
// rejects every request, since a service without a configured key should
// not accept any.
type APIKeyGuard struct {
	// Expected is the key clients must present. Bound at wrap time.
	Expected string
}

// NewAPIKeyGuard creates an APIKeyGuard expecting the given key.
func NewAPIKeyGuard(expected string) *APIKeyGuard {
	return &APIKeyGuard{Expected: expected}
}

// Wrap returns a handler that delegates to next only when the request
// carries a valid API key. Failed checks respond 401 with a fixed JSON
// error message and never invoke next.
func (g *APIKeyGuard) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := CheckAPIKey(r, g.Expected); err != nil {
			RespondWithError(w, r, http.StatusUnauthorized, InvalidAPIKeyMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CheckAPIKey validates the request's API key against expected. It returns
// ErrInvalidCredential when the header is absent, expected is empty, or
// the values differ, and nil on an exact match.
func CheckAPIKey(r *http.Request, expected string) error {
	key := r.Header.Get(APIKeyHeader)
	if key == "" || expected == "" {
		return ErrInvalidCredential
	}
	if key != expected {
		return ErrInvalidCredential
	}
	return nil
}
