// Package log provides the command-line logger, a zap logger shared by the
// commands and handed to library code through options.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// Init initializes the package-level logger. Debug mode uses zap's
// development configuration, otherwise the production configuration is
// used.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	} else {
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	set(l)
	return nil
}

func set(l *zap.Logger) {
	base = l
	sugar = l.Sugar()
}

// Logger returns the base logger for library options such as
// rfdepth.WithLogger. Before Init it returns a no-op logger.
func Logger() *zap.Logger {
	if base == nil {
		set(zap.NewNop())
	}
	return base.WithOptions(zap.AddCallerSkip(-1))
}

func sugared() *zap.SugaredLogger {
	if sugar == nil {
		set(zap.NewNop())
	}
	return sugar
}

// Sync flushes buffered log entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

func Debugw(msg string, keysAndValues ...any) {
	sugared().Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...any) {
	sugared().Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...any) {
	sugared().Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...any) {
	sugared().Errorw(msg, keysAndValues...)
}

func Infof(template string, args ...any) {
	sugared().Infof(template, args...)
}

// Fatalf logs and exits with status 1.
func Fatalf(template string, args ...any) {
	sugared().Fatalf(template, args...)
}
