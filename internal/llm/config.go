package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskChainGrouping TaskType = "chain_grouping"
)

// Provider names accepted in a build request's llm_api block.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig

	OpenRouterAPIKey string
	OpenRouterURL    string
	OpenRouterModel  string
}

// DefaultConfig returns an LLMConfig with sensible defaults. Chain grouping
// prompts are long, so the timeout is generous and nothing is retried.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:   false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  60000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskChainGrouping: {Temperature: 0.3, MaxTokens: 3000, TimeoutMs: 60000},
		},
		OpenRouterURL:   "https://openrouter.ai/api/v1",
		OpenRouterModel: "anthropic/claude-sonnet-4",
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("SPELLTREE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SPELLTREE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SPELLTREE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SPELLTREE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
			tc := cfg.Tasks[TaskChainGrouping]
			tc.TimeoutMs = 0
			cfg.Tasks[TaskChainGrouping] = tc
		}
	}
	if v := os.Getenv("SPELLTREE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.OpenRouterAPIKey = v
	}
	if v := os.Getenv("SPELLTREE_OPENROUTER_URL"); v != "" {
		cfg.OpenRouterURL = v
	}
	if v := os.Getenv("SPELLTREE_OPENROUTER_MODEL"); v != "" {
		cfg.OpenRouterModel = v
	}

	applyTaskTimeoutEnv(&cfg, TaskChainGrouping, "SPELLTREE_LLM_CHAIN_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
