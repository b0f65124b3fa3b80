// Package logging provides config-driven categorized logging for phonebook.
// The TUI owns the terminal, so client logs go to one file per category
// under logging.dir. When debug_mode is false every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"phonebook/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryAPI    Category = "api"    // GraphQL requests and responses
	CategoryUI     Category = "ui"     // TUI state transitions
	CategoryStore  Category = "store"  // Dev server persistence
	CategoryServer Category = "server" // Dev server HTTP handling
)

// Logger is a category-scoped sugared zap logger.
// A Logger with a nil sugar discards everything.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	files     []*os.File
	loggersMu sync.RWMutex

	cfg      config.LoggingConfig
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	shared   zapcore.Core // when set, every category writes here
	configMu sync.RWMutex
)

// Initialize configures file logging from cfg. It must run before the first
// Get for the settings to apply to that category.
func Initialize(lc config.LoggingConfig) error {
	CloseAll()

	configMu.Lock()
	cfg = lc
	shared = nil
	level.SetLevel(parseLevel(lc.Level))
	configMu.Unlock()

	if !lc.DebugMode {
		return nil
	}
	if lc.Dir == "" {
		return fmt.Errorf("logging dir required when debug_mode is on")
	}
	if err := os.MkdirAll(lc.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	Boot("logging initialized: dir=%s level=%s format=%s", lc.Dir, lc.Level, lc.Format)
	return nil
}

// UseCore routes every category to core, ignoring debug_mode and files.
// The dev server uses this to log to stderr; tests use it with an observer.
func UseCore(core zapcore.Core) {
	CloseAll()

	configMu.Lock()
	defer configMu.Unlock()
	shared = core
}

// SetLevel changes the minimum level of file loggers at runtime.
func SetLevel(l string) {
	level.SetLevel(parseLevel(l))
}

func parseLevel(l string) zapcore.Level {
	switch strings.ToLower(l) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns (or creates) the logger for a category.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[category]; ok {
		return l
	}

	l := newLogger(category)
	loggers[category] = l
	return l
}

// newLogger must be called with loggersMu held.
func newLogger(category Category) *Logger {
	configMu.RLock()
	defer configMu.RUnlock()

	if shared != nil {
		return &Logger{
			category: category,
			sugar:    zap.New(shared).Named(string(category)).Sugar(),
		}
	}

	if !cfg.CategoryEnabled(string(category)) || cfg.Dir == "" {
		return &Logger{category: category}
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(cfg.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return &Logger{category: category}
	}
	files = append(files, file)

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(file), level)

	return &Logger{
		category: category,
		sugar:    zap.New(core).Named(string(category)).Sugar(),
	}
}

// Enabled reports whether this logger writes anywhere.
func (l *Logger) Enabled() bool {
	return l.sugar != nil
}

// With returns a child logger carrying structured key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	if l.sugar == nil {
		return l
	}
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Debugf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Infof(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Warnf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.sugar != nil {
		l.sugar.Errorf(format, args...)
	}
}

// CloseAll flushes and closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		if l.sugar != nil {
			_ = l.sugar.Sync()
		}
	}
	for _, f := range files {
		f.Close()
	}
	files = nil
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Info(format, args...) }
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debug(format, args...) }
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

func API(format string, args ...interface{})      { Get(CategoryAPI).Info(format, args...) }
func APIDebug(format string, args ...interface{}) { Get(CategoryAPI).Debug(format, args...) }
func APIError(format string, args ...interface{}) { Get(CategoryAPI).Error(format, args...) }

func UI(format string, args ...interface{})      { Get(CategoryUI).Info(format, args...) }
func UIDebug(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }

func Store(format string, args ...interface{})      { Get(CategoryStore).Info(format, args...) }
func StoreDebug(format string, args ...interface{}) { Get(CategoryStore).Debug(format, args...) }
func StoreError(format string, args ...interface{}) { Get(CategoryStore).Error(format, args...) }

func Server(format string, args ...interface{})     { Get(CategoryServer).Info(format, args...) }
func ServerWarn(format string, args ...interface{}) { Get(CategoryServer).Warn(format, args...) }

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
