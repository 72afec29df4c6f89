package secrets

import "errors"

// ErrFetchFailed is returned when a secret could not be retrieved or its
// payload could not be decoded. The wrapped error carries the client
// failure (authentication, not-found, network) for diagnostics; callers
// should treat any ErrFetchFailed as fatal rather than as a missing
// optional value.
var ErrFetchFailed = errors.New("secret fetch failed")
