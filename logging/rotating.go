package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingWriter appends to one log file per ISO week, starts a fresh
// numbered file when the size cap is hit, and prunes files older than the
// retention window.
type RotatingWriter struct {
	mu          sync.Mutex
	logDir      string
	maxFileSize int64
	retention   time.Duration

	file        *os.File
	week        string
	size        int64
	seq         int
	lastCleanup time.Time
}

// NewRotatingWriter creates a writer rooted at logDir. maxFileSize <= 0
// disables size-based rotation.
func NewRotatingWriter(logDir string, retentionWeeks int, maxFileSize int64) *RotatingWriter {
	return &RotatingWriter{
		logDir:      logDir,
		maxFileSize: maxFileSize,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
	}
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	week := weekKey(time.Now())
	needsRotate := w.file == nil || week != w.week
	if w.maxFileSize > 0 && !needsRotate && w.size+int64(len(p)) > w.maxFileSize {
		w.seq++
		needsRotate = true
	}
	if week != w.week {
		w.seq = 0
	}

	if needsRotate {
		if err := w.rotate(week); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotatingWriter) rotate(week string) error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}

	name := fmt.Sprintf("app-%s.log", week)
	if w.seq > 0 {
		name = fmt.Sprintf("app-%s_%02d.log", week, w.seq)
	}
	path := filepath.Join(w.logDir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	w.file = file
	w.week = week
	w.size = 0
	if info, err := file.Stat(); err == nil {
		w.size = info.Size()
	}

	if time.Since(w.lastCleanup) > 24*time.Hour {
		w.lastCleanup = time.Now()
		go w.cleanupOldLogs()
	}

	return nil
}

// Close releases the current log file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *RotatingWriter) cleanupOldLogs() {
	entries, err := os.ReadDir(w.logDir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-w.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(w.logDir, entry.Name()))
		}
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// newLogger builds the slog logger: JSON to the rotating file when logDir is
// set, text to stderr otherwise.
func newLogger(logDir, level string, retentionWeeks int, maxFileSize int64) *slog.Logger {
	lvl := parseLevel(level)

	if logDir == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory %s: %v\n", logDir, err)
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	var out io.Writer = NewRotatingWriter(logDir, retentionWeeks, maxFileSize)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl}))
}
