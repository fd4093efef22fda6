package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewConsoleLogger returns a human readable logger writing to out at level
func NewConsoleLogger(out io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), level)
	return zap.New(core, zap.AddCaller())
}

// NewJSONLogger returns a structured logger writing to out at level
func NewJSONLogger(out io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(out), level)
	return zap.New(core, zap.AddCaller())
}

// New parses level ("debug", "info", ...) and returns a console or json
// logger writing to stderr
func New(level string, json bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "logging: bad level %q", level)
	}
	if json {
		return NewJSONLogger(os.Stderr, lvl), nil
	}
	return NewConsoleLogger(os.Stderr, lvl), nil
}

// Nop returns a logger that discards everything
func Nop() *zap.Logger {
	return zap.NewNop()
}
