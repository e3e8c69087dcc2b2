package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log line as "service"
const ServiceName = "optivise-installer"

// Logger wraps zap.Logger with installer-specific helpers.
type Logger struct {
	*zap.Logger
}

// Config selects the level, encoding and sinks.
type Config struct {
	Level       string
	Development bool
	// OutputPaths defaults to stderr so stdout stays free for CLI output
	OutputPaths []string
}

// DefaultConfig logs JSON at info level to stderr.
func DefaultConfig() Config {
	return Config{Level: "info", OutputPaths: []string{"stderr"}}
}

// New builds a logger. Development mode switches to a colored console
// encoder and enables stack traces on warnings.
func New(cfg Config) (*Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	sinks := cfg.OutputPaths
	if len(sinks) == 0 {
		sinks = DefaultConfig().OutputPaths
	}

	zapCfg := zap.Config{
		Level:             level,
		Development:       cfg.Development,
		Encoding:          "json",
		EncoderConfig:     productionEncoder(),
		OutputPaths:       sinks,
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
		InitialFields:     map[string]any{"service": ServiceName},
	}
	if cfg.Development {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = developmentEncoder()
		zapCfg.InitialFields = nil
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewDefault never fails; an unbuildable config yields a no-op logger.
func NewDefault() *Logger {
	if logger, err := New(DefaultConfig()); err == nil {
		return logger
	}
	return NewNop()
}

// FromSettings builds a logger from the LOG_LEVEL / LOG_DEV settings and
// falls back to info when the level does not parse.
func FromSettings(level string, development bool) *Logger {
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Development = development

	logger, err := New(cfg)
	if err != nil {
		fallback := NewDefault()
		fallback.Warn("invalid log level, using info", zap.String("level", level))
		return fallback
	}
	return logger
}

// NewNop discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// ForApp tags the logger with the host application.
func (l *Logger) ForApp(app string) *Logger {
	return &Logger{Logger: l.With(zap.String("app", app))}
}

// Named scopes the logger to a component.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

func productionEncoder() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}

func developmentEncoder() zapcore.EncoderConfig {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return enc
}
