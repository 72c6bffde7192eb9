// Package logging provides the application-wide structured logger: slog
// backed by a rotating weekly file plus a console handler.
package logging

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// InitLogger wires the global logger. An empty logDir logs to the console only.
func InitLogger(logDir string, level string, retentionWeeks int, maxFileSize int64) {
	defaultLogger = newLogger(logDir, level, retentionWeeks, maxFileSize)
	slog.SetDefault(defaultLogger)
}

func logger() *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger
	}
	// Console fallback before InitLogger runs (tests, early startup)
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func Info(msg string, args ...any)  { logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { logger().Warn(msg, args...) }
func Error(msg string, args ...any) { logger().Error(msg, args...) }
func Debug(msg string, args ...any) { logger().Debug(msg, args...) }
