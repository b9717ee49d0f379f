// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds the default logger. With file set, JSON records go to a
// rotating log file; otherwise text records go to stderr. The returned
// closer releases the file and is safe to call when logging to stderr.
func Setup(level, file string) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if file == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(rotator, opts)), rotator
}

// ParseLevel converts a string log level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
