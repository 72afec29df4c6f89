package config

import "errors"

// ErrLoadFailed is returned when either loading phase fails: reading the
// local environment source or fetching the shared secrets. The wrapped
// error identifies the failing phase and the underlying cause. No
// partially-loaded store is ever returned alongside it.
var ErrLoadFailed = errors.New("configuration load failed")
