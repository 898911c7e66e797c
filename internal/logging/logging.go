// Package logging builds the zap loggers used by the attacksim command.
package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings understood by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects the level, encoding and destination of a logger.
type Config struct {
	Level  string    // debug, info, warn or error; empty means info
	Format string    // FormatConsole or FormatJSON; empty means console
	Writer io.Writer // nil means discard
}

// New creates a named logger from c.
func New(name string, c Config) (*zap.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.NameKey = "name"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(c.Format) {
	case "", FormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, errors.Errorf("unknown log format %q", c.Format)
	}

	w := c.Writer
	if w == nil {
		w = io.Discard
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return NewZapLogger(core).Named(name), nil
}

// NewZapLogger wraps core with caller annotation and error-level stack
// traces.
func NewZapLogger(core zapcore.Core, options ...zap.Option) *zap.Logger {
	return zap.New(
		core,
		append([]zap.Option{
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		}, options...)...,
	)
}

// ParseLevel converts a level name to a zapcore.Level. "warning" is accepted
// as an alias for "warn".
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return l, errors.Wrapf(err, "invalid log level %q", level)
	}
	return l, nil
}
