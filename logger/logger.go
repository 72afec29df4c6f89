package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the library's logging based on the given level name.
// It creates a structured JSON logger writing to stdout, sets it as the
// default slog logger, and returns it.
//
// Level names are matched case-insensitively. An unrecognized level falls
// back to info and emits a warning rather than failing, so a typo in a
// deployment manifest never prevents startup.
func Setup(level string) *slog.Logger {
	return setup(level, os.Stdout)
}

// setup is the testable core of Setup with an injectable output stream.
func setup(level string, out io.Writer) *slog.Logger {
	parsed, ok := parseLevel(level)
	if !ok {
		// Use a temporary text logger so the warning is visible even
		// before the JSON handler is installed.
		tmp := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmp.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
		parsed = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parsed})
	log := slog.New(handler)

	// Make this logger the default so components can use the package-level
	// slog functions directly (slog.Info, slog.Error, etc.).
	slog.SetDefault(log)

	return log
}

// parseLevel maps a level name to its slog level. The second return value
// reports whether the name was recognized.
func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
