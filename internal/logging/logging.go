// Package logging sets up the launcher's structured logger. Diagnostics meant
// for the user go through the ui package; this logger carries the detail.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written when output names a directory.
const FileName = "noderunner.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Setup returns a logger for the given level and output. output is "stderr",
// "stdout" or a directory that receives a rotating noderunner.log. The
// returned closer releases the log file.
func Setup(level, output string) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var writer io.Writer = os.Stderr
	switch output {
	case "", "stderr":
	case "stdout":
		writer = os.Stdout
	default:
		if err := os.MkdirAll(output, 0o755); err != nil {
			return nil, nil, err
		}
		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(output, FileName),
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		// Files get JSON lines; terminals get text.
		return slog.New(slog.NewJSONHandler(logFile, opts)), logFile, nil
	}

	return slog.New(slog.NewTextHandler(writer, opts)), nopCloser{}, nil
}
