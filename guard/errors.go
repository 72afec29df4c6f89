package guard

import "errors"

// InvalidAPIKeyMessage is the exact client-facing message used whenever
// the API-key check fails, regardless of the reason. Keeping it fixed
// avoids leaking whether the key was absent or merely wrong.
const InvalidAPIKeyMessage = "API key is invalid or is missing."

// ErrInvalidCredential is returned by CheckAPIKey when the request's
// API key is missing, the expected key is unset, or the two differ.
var ErrInvalidCredential = errors.New(InvalidAPIKeyMessage)
