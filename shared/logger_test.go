package shared

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerFromEnvDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "true")
	logger, err := NewLoggerFromEnv("test-service")
	if err != nil {
		t.Fatalf("NewLoggerFromEnv failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled in development mode")
	}
}

func TestNewLoggerFromEnvProduction(t *testing.T) {
	t.Setenv("DEVELOPMENT", "false")
	logger, err := NewLoggerFromEnv("test-service")
	if err != nil {
		t.Fatalf("NewLoggerFromEnv failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be disabled outside development mode")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level to be enabled outside development mode")
	}
}

func TestNewLoggerQuiet(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{ServiceName: "test-service", Quiet: true})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level to be suppressed in quiet mode")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected error level to remain enabled in quiet mode")
	}
}

func TestNopLoggerClose(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nop logger returned error: %v", err)
	}
}
