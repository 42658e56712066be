// Package logging builds the slog logger. The terminal belongs to the UI, so
// records go to a rotating file or nowhere.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure New.
type Options struct {
	App   string
	Level string // debug, info, warn, error
	File  string // empty discards everything
}

// New returns a logger and a close func for its file. Every record carries
// the app name and an id unique to this run.
func New(opts Options) (*slog.Logger, func() error, error) {
	if opts.App == "" {
		opts.App = "snoo"
	}

	writer, closeFn, err := resolveWriter(opts.File)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("run", uuid.NewString()),
	)
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func resolveWriter(path string) (io.Writer, func() error, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}
	return rot, rot.Close, nil
}
