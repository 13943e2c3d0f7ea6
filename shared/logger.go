package shared

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	ServiceName string // e.g. "webproof-client" or "vouch-cli"
	Development bool   // true for console output with debug level
	Quiet       bool   // true to suppress everything below error level
	LogFile     string // optional path for a rotating log file
}

// Logger wraps zap.Logger with additional context
type Logger struct {
	*zap.Logger
	serviceName string
}

// NewLogger creates a new logger instance based on the configuration
func NewLogger(config LoggerConfig) (*Logger, error) {
	var zapLogger *zap.Logger
	var err error

	level := zap.InfoLevel
	if config.Development {
		level = zap.DebugLevel
	}
	if config.Quiet {
		level = zap.ErrorLevel
	}

	if config.LogFile != "" {
		// Rotating file sink; console output is suppressed entirely so that
		// --quiet CLIs still keep a full trail on disk.
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    25,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   true,
		})
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), writer, zap.NewAtomicLevelAt(level))
		zapLogger = zap.New(core)
	} else if config.Development {
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = zapConfig.Build()
	} else {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = zapConfig.Build()
	}

	if err != nil {
		return nil, err
	}

	zapLogger = zapLogger.With(
		zap.String("service", config.ServiceName),
	)

	return &Logger{
		Logger:      zapLogger,
		serviceName: config.ServiceName,
	}, nil
}

// NewLoggerFromEnv creates a logger using environment variables
func NewLoggerFromEnv(serviceName string) (*Logger, error) {
	config := LoggerConfig{
		ServiceName: serviceName,
		Development: GetEnvOrDefault("DEVELOPMENT", "false") == "true",
	}
	return NewLogger(config)
}

// NewNopLogger returns a logger that discards everything. Used as the default
// for library callers that do not supply one.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// WithRequestID returns a logger annotated with a request ID for tracking a
// proof round across generate/verify calls.
func (l *Logger) WithRequestID(requestID string) *zap.Logger {
	if requestID == "" {
		return l.Logger
	}
	return l.Logger.With(zap.String("request_id", requestID))
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.Logger.Sync()
}

// Close closes the logger and flushes any buffered entries
func (l *Logger) Close() error {
	return l.Logger.Sync()
}
