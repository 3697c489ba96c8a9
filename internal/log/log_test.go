package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()

	assert.NotNil(t, logger)
	logger.Info("test message")
	assert.IsType(t, &zap.Logger{}, logger)
}

func TestNewLoggerWithLevel(t *testing.T) {
	logger := NewLoggerWithLevel(zapcore.DebugLevel)

	assert.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "Debug level should be enabled")

	logger = NewLoggerWithLevel(zapcore.WarnLevel)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel), "Info level should be disabled")
}
