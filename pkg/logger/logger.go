package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// ParseLevel accepts the usual spellings ("warn", "WARNING", "err") and
// reports unknown values instead of silently picking one.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// New builds a logger writing to w in the given format ("json" or "text").
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

// Init configures the process-wide logger and slog's default.
func Init(level, format string) error {
	lg, err := New(os.Stdout, level, format)
	if err != nil {
		return err
	}
	mu.Lock()
	defaultLogger = lg
	mu.Unlock()
	slog.SetDefault(lg)
	return nil
}

func LoggerWrapper() *slog.Logger {
	mu.RLock()
	lg := defaultLogger
	mu.RUnlock()
	if lg == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		_ = Init("debug", "text")
		mu.RLock()
		lg = defaultLogger
		mu.RUnlock()
	}
	return lg
}
