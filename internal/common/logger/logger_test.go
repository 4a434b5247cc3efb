package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"info":  zapcore.InfoLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestZapWrapper_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"sessionId": "abc"}).
		WithError(errors.New("boom"))

	log.Warn("submission failed", map[string]interface{}{
		"status": "network_failed",
		"cause":  errors.New("dial tcp"),
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "submission failed", entries[0].Message)
		assert.Equal(t, "abc", ctx["sessionId"])
		assert.Equal(t, "boom", ctx["error"])
		assert.Equal(t, "dial tcp", ctx["cause"])
		assert.Equal(t, "network_failed", ctx["status"])
	}
}

func TestNew_FallsBackToNopOnBadOutput(t *testing.T) {
	l := New("info", "json", "/nonexistent-dir/definitely/missing.log")
	assert.NotNil(t, l)
	l.Info("still safe to call")
}

func TestNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Debug("ignored", nil)
	log.WithFields(nil).Error("ignored", map[string]interface{}{"k": 1})
}
