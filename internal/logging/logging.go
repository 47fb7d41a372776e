// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options control where and how verbosely the logger writes.
type Options struct {
	// Level is one of debug, info, warn, error. Anything else means info.
	Level string
	// Dir is the directory for rotated log files.
	Dir string
	// FileOnly drops the console copy. The terminal UI sets this so log
	// lines do not tear the screen.
	FileOnly bool
}

// New creates a JSON logger that writes to a rotated file and, unless
// FileOnly is set, to stderr.
func New(opts Options) *slog.Logger {
	dir := opts.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		// Fall back to stderr if the directory cannot be created.
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	fileLogger := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "dealersim.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileLogger
	if !opts.FileOnly {
		writer = io.MultiWriter(os.Stderr, fileLogger)
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	return slog.New(slog.NewJSONHandler(writer, handlerOpts))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
