// Package logging writes a structured log of each run to
// ~/.lettuce/logs/lettuce.log so users can inspect what a command did after
// the terminal output is gone.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/initcard/lettuce/internal/userdata"
)

// Logger is a slog.Logger backed by the log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New opens (or creates) the log file in dir and returns a logger at the
// given level.
func New(dir, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(dir, userdata.LogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, userdata.FilePermNormal)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})),
		file:   f,
	}, nil
}

// Open is New over the default log directory. If the file cannot be opened
// a discard logger is returned along with the error.
func Open(level string) (*Logger, error) {
	dir, err := userdata.GetLogsDir()
	if err == nil {
		var l *Logger
		if l, err = New(dir, level); err == nil {
			return l, nil
		}
	}
	return Discard(), err
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
	return lvl, nil
}
