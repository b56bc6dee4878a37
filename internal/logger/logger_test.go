package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestToLevel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(zapcore.DebugLevel, ToLevel(DebugLevel))
	assert.Equal(zapcore.InfoLevel, ToLevel(InfoLevel))
	assert.Equal(zapcore.WarnLevel, ToLevel(WarnLevel))
	assert.Equal(zapcore.ErrorLevel, ToLevel(ErrorLevel))
	assert.Equal(zapcore.InfoLevel, ToLevel("verbose"))
}

func TestNewCore(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	log := zap.New(NewCore(WarnLevel, zapcore.AddSync(&buf)))

	log.Info("dropped")
	log.Warn("kept", zap.Float64("ct", 38.2))

	out := buf.String()
	assert.NotContains(out, "dropped")
	assert.Contains(out, "kept")
	assert.Contains(out, "WARN")
	assert.Contains(out, "38.2")

	assert.NotNil(New(DebugLevel))
}
