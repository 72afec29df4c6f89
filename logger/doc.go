// Package logger configures the application's structured logging.
// It installs a JSON slog handler as the process-wide default so
// every component in the library logs through the same pipeline.
package logger
