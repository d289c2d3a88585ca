package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New production zap logger writing json lines to stderr at info level.
func New() (*zap.Logger, error) {
	return NewWithOptions("info", []string{"stderr"})
}

// NewWithOptions zap logger at the given level ("debug", "info", "warn", "error") writing to outputPaths.
// the interactive menu passes a log file here so log lines do not tear the terminal ui.
func NewWithOptions(level string, outputPaths []string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = outputPaths
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	return cfg.Build()
}
