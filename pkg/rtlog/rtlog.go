// Package rtlog adapts go.uber.org/zap to core.Logger, so the render
// driver, scene loader, and worker pool can log structured fields without
// importing zap directly (pkg/core stays dependency-free). Grounded on
// nicolasmd87-gopher3D's zap.String/zap.Int/zap.Error field usage across
// its renderer package.
package rtlog

import (
	"go.uber.org/zap"

	"github.com/rayforge/raytracer/pkg/core"
)

// Logger wraps a zap.SugaredLogger behind core.Logger's single Printf
// capability, so callers that only know about core.Logger still get zap's
// structured, leveled output underneath.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a production zap logger (JSON encoding, Info level) wrapped as
// a core.Logger.
func New() (*Logger, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: zl.Sugar()}, nil
}

// NewDevelopment builds a human-readable console logger, useful for local
// CLI runs where JSON output is noise.
func NewDevelopment() (*Logger, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{sugar: zl.Sugar()}, nil
}

// Printf implements core.Logger.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Sync flushes any buffered log entries; callers defer this after New.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

var _ core.Logger = (*Logger)(nil)
