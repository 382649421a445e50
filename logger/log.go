// Package logger wraps a shared zap sugared logger behind the small leveled
// API the rest of the module uses.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	atom  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = build()
)

func build() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}

// GetLevel returns the current display level.
func GetLevel() string {
	return atom.Level().String()
}

// SetLevel changes the display level; unknown names fall back to debug.
func SetLevel(lvl string) {
	parsed, err := zapcore.ParseLevel(lvl)
	if err != nil {
		parsed = zapcore.DebugLevel
	}
	atom.SetLevel(parsed)
	Debugf("Set logger level to %v", parsed)
}

func Debug(args ...interface{}) {
	sugar.Debug(args...)
}

func Info(args ...interface{}) {
	sugar.Info(args...)
}

func Error(args ...interface{}) {
	sugar.Error(args...)
}

func Debugf(template string, args ...interface{}) {
	sugar.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

// Sync flushes buffered log entries before process exit.
func Sync() {
	_ = sugar.Sync()
}
