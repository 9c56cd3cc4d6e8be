// Package logging builds the process logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger writing to stderr at level. The
// returned AtomicLevel can change the level while the logger is in use.
func New(level zapcore.Level) (*zap.Logger, zap.AtomicLevel, error) {
	atom := zap.NewAtomicLevelAt(level)

	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, atom, err
	}
	return logger, atom, nil
}

// SetLevel parses text and applies it to atom. An empty string is a no-op.
func SetLevel(atom zap.AtomicLevel, text string) error {
	if text == "" {
		return nil
	}
	return atom.UnmarshalText([]byte(text))
}
