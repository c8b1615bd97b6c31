package llm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	NewLogObserver(&buf).OnCallComplete(LLMCallEvent{
		Task: TaskChainGrouping, Model: "llama3.2", LatencyMs: 12, ErrorCode: "TIMEOUT",
	})
	assert.Contains(t, buf.String(), "llm_call task=chain_grouping model=llama3.2 latency_ms=12 status=err:TIMEOUT")
}

func TestZapObserver(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	obs := NewZapObserver(zap.New(core))

	obs.OnCallComplete(LLMCallEvent{Task: TaskChainGrouping, Model: "m", Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskChainGrouping, Model: "m", ErrorCode: "UNAVAILABLE"})

	entries := logs.FilterMessage("llm_call").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "err:UNAVAILABLE", entries[1].ContextMap()["status"])
}
