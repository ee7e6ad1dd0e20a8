// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		wantErr string
		enabled zapcore.Level
	}{
		{name: "prod defaults to info", env: "prod", enabled: zapcore.InfoLevel},
		{name: "local defaults to debug", env: "local", enabled: zapcore.DebugLevel},
		{name: "empty env is dev", env: "", enabled: zapcore.DebugLevel},
		{name: "override", env: "prod", level: "warn", enabled: zapcore.WarnLevel},
		{name: "unknown env", env: "staging", wantErr: "unknown environment"},
		{name: "bad level", env: "dev", level: "loud", wantErr: "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.env, tt.level)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			assert.False(t, l.Core().Enabled(tt.enabled-1))
		})
	}
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestLookup(t *testing.T) {
	_, ok := Lookup(context.Background())
	assert.False(t, ok)

	l := zap.NewExample()
	got, ok := Lookup(ContextWithLogger(context.Background(), l))
	assert.True(t, ok)
	assert.Same(t, l, got)
}

func TestNew(t *testing.T) {
	l, err := New(types.LogConfig{Env: "prod", Level: "error"}, "v1.2.3")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = New(types.LogConfig{Env: "docker"}, "dev")
	assert.Error(t, err)
}

func TestWith(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core).With(zap.String("request_id", "r1")))

	FromContext(With(ctx, zap.String("query", "quantum"))).Info("searching")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "r1", fields["request_id"])
	assert.Equal(t, "quantum", fields["query"])

	assert.NotPanics(t, func() {
		FromContext(With(context.Background(), zap.String("k", "v"))).Info("dropped")
	})
}
