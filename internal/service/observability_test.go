package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/spelltree/internal/prereq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapUseCaseObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewZapUseCaseObserver(zap.New(core))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "build",
		Duration: 25 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"seed": int64(42), "command": "build_tree"},
	})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "compare", Err: errors.New("boom")})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "service_use_case", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "build", fields["use_case"])
	assert.Equal(t, int64(25), fields["duration_ms"])
	assert.Equal(t, int64(42), fields["seed"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestNewZapUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewZapUseCaseObserver(nil))
}

func TestPrereqService_ReportsScoredPairs(t *testing.T) {
	obs := &recordingObserver{}
	svc := NewPrereqService(obs)

	resp, err := svc.ScorePrereqs(context.Background(), prereq.Request{
		Pairs: []prereq.Pair{{
			SpellID:    "0x1",
			Spell:      prereq.Subject{Name: "Firebolt"},
			Candidates: []prereq.Candidate{{NodeID: "0x2", Name: "Flames"}},
		}},
		Settings: prereq.DefaultSettings(),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "score-prereqs", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["scored"])
}
