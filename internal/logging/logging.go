// Package logging builds the application logger. The terminal belongs to the
// interface, so logs go to a file in the config dir instead of stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a file-backed logger. Verbose lowers the level to debug. When
// the log file cannot be opened a nop logger is returned; losing logs must
// never take the app down.
func New(path string, verbose bool) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zap.NewNop()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
