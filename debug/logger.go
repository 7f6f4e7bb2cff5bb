// Package debug provides the diagnostics logger.
package debug

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Enabled returns true if debug mode is active (TICTAC_DEBUG=1).
func Enabled() bool {
	return os.Getenv("TICTAC_DEBUG") == "1"
}

// NewLogger returns a human-readable debug logger on stderr when enabled,
// and a no-op logger otherwise.
func NewLogger(enabled bool) (*zap.Logger, error) {
	if !enabled {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
