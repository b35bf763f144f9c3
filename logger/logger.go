// Package logger provides the process-wide structured logger. It writes JSON
// to stderr, filters by severity, and can suppress known-noisy messages by
// substring so that chatty third-party SDK output does not drown diagnostics.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger   = zap.NewNop().Sugar()
	initOnce sync.Once
)

type config struct {
	level      string
	suppressed []string
}

type Option func(*config)

// WithLevel sets the minimum severity (debug, info, warn, error).
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithSuppressed drops any log entry whose message contains one of the given
// substrings, regardless of severity.
func WithSuppressed(substrings []string) Option {
	return func(c *config) {
		c.suppressed = substrings
	}
}

// Init configures the global logger once. Later calls have no effect.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		var core zapcore.Core = zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(os.Stderr),
			level,
		)
		if len(cfg.suppressed) > 0 {
			core = &filterCore{Core: core, suppressed: cfg.suppressed}
		}

		logger = zap.New(core).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Call on shutdown.
func Sync() error {
	return logger.Sync()
}

// filterCore drops entries whose message matches the suppression list before
// they reach the wrapped core.
type filterCore struct {
	zapcore.Core
	suppressed []string
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields), suppressed: c.suppressed}
}

func (c *filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for _, s := range c.suppressed {
		if strings.Contains(ent.Message, s) {
			return ce
		}
	}

	return c.Core.Check(ent, ce)
}

func Debug(args ...interface{}) {
	logger.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Info(args ...interface{}) {
	logger.Info(args...)
}

func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warn(args ...interface{}) {
	logger.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func Error(args ...interface{}) {
	logger.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
