// Package log provides the package-level logger shared across the module.
package log

import "go.uber.org/zap"

// Default is the logger used by the module. Replace it with SetLogger.
var Default = newDefault()

func newDefault() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// SetLogger replaces the module logger.
func SetLogger(logger *zap.SugaredLogger) {
	if logger == nil {
		return
	}
	Default = logger
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	Default.Infof(format, args...)
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	Default.Warnf(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	Default.Errorf(format, args...)
}
