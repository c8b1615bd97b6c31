package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		verbose bool
		debug   bool
	}{
		{"development quiet", "development", false, false},
		{"development verbose", "development", true, true},
		{"production quiet", "production", false, false},
		{"production verbose", "prod", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.env, tt.verbose)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNewLeveled_RaisesAtRuntime(t *testing.T) {
	lvl := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	l, err := NewLeveled("development", lvl)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	lvl.SetLevel(zapcore.DebugLevel)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestSync_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { Sync(nil) })
}
