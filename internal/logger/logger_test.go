package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		json     bool
		debug    bool
		encoding string
		level    zapcore.Level
	}{
		{"console info", false, false, "console", zapcore.InfoLevel},
		{"json info", true, false, "json", zapcore.InfoLevel},
		{"console debug", false, true, "console", zapcore.DebugLevel},
		{"json debug", true, true, "json", zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config(tt.json, tt.debug)
			assert.Equal(t, tt.encoding, cfg.Encoding)
			assert.Equal(t, tt.level, cfg.Level.Level())
			assert.Equal(t, "caller", cfg.EncoderConfig.CallerKey)
		})
	}
}

func TestNew(t *testing.T) {
	l, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(false, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestStrings(t *testing.T) {
	f := Strings("skills", []string{"a", "b", "c"}, 2)
	enc := zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	assert.Equal(t, []interface{}{"a", "b", "..."}, enc.Fields["skills"])

	f = Strings("skills", []string{"a"}, 2)
	enc = zapcore.NewMapObjectEncoder()
	f.AddTo(enc)
	assert.Equal(t, []interface{}{"a"}, enc.Fields["skills"])
}
