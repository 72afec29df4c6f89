package datastore

import "errors"

var (
	// ErrConnectionFailed is returned by New when the engine cannot be
	// reached: the initial ping within the configured connect timeout
	// did not succeed.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrNotConnected is returned when a session is requested from a
	// gateway that never established a connection.
	ErrNotConnected = errors.New("database connection not established")

	// ErrInvalidConfig is returned when the flat configuration entries
	// cannot be decoded into a valid Config.
	ErrInvalidConfig = errors.New("invalid database configuration")
)
