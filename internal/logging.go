package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogCloser releases the log file opened by NewLogger, if any
type LogCloser func() error

// NewLogger creates the run logger. Records go to w (normally stderr) at info
// level, debug with verbose, warnings only when quiet. When logFile is set the
// same records are appended there with timestamps.
func NewLogger(w io.Writer, verbose, quiet bool, logFile string) (*slog.Logger, LogCloser, error) {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}

	closer := LogCloser(func() error { return nil })
	if logFile == "" {
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				// console output stays short; the file log keeps timestamps
				if len(groups) == 0 && a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		})
		return slog.New(handler), closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", logFile, err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(w, file), &slog.HandlerOptions{Level: level})
	return slog.New(handler), file.Close, nil
}
