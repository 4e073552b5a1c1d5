// Package logging provides the single process-wide structured logger.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.Mutex
	log *zap.Logger
)

// Init builds the process-wide logger. verbose raises the level to Debug.
// Safe to call more than once; the latest call wins.
func Init(verbose bool) (*zap.Logger, error) {
	mu.Lock()
	defer mu.Unlock()

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	log = l
	return log, nil
}

// L returns the process-wide logger, lazily building a no-op default if
// Init was never called (library callers and tests).
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = zap.NewNop()
	}
	return log
}

// Sync flushes any buffered log entries. Call on process exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		_ = log.Sync()
	}
}

// SetForTest installs a logger for the duration of a test and returns a
// restore function.
func SetForTest(l *zap.Logger) func() {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()
	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}
