// Package logging wraps charmbracelet/log with a file-backed global logger.
// The terminal belongs to the UI, so nothing is ever written to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// logger is the global logger instance. Nil until Init succeeds. Fetch
	// goroutines may still log while Close runs, so it is swapped atomically.
	logger atomic.Pointer[log.Logger]

	fileMu  sync.Mutex
	logFile *os.File
)

// DefaultPath returns the dated log file under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	name := fmt.Sprintf("hnterm-%s.log", time.Now().Format("2006-01-02"))
	return filepath.Join(dir, "hnterm", name), nil
}

// Init opens path (or DefaultPath when empty) and installs the global logger.
func Init(path, level string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(f, level)
	fileMu.Lock()
	prev := logFile
	logFile = f
	fileMu.Unlock()
	logger.Store(l)
	if prev != nil {
		_ = prev.Close()
	}

	l.Info("hnterm started", "pid", os.Getpid())
	return nil
}

// New builds a logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	})
}

// Close flushes and closes the log file. Helpers called concurrently either
// log before the file closes or become no-ops.
func Close() {
	if l := logger.Swap(nil); l != nil {
		l.Info("hnterm shutting down")
	}
	fileMu.Lock()
	defer fileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if l := logger.Load(); l != nil {
		l.Info(msg, keyvals...)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if l := logger.Load(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if l := logger.Load(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if l := logger.Load(); l != nil {
		l.Error(msg, keyvals...)
	}
}
