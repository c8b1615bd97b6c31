package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRouterConfig(url string) LLMConfig {
	cfg := DefaultConfig()
	cfg.OpenRouterURL = url
	cfg.OpenRouterAPIKey = "sk-test"
	return cfg
}

func TestNewOpenRouterClient_MissingKey(t *testing.T) {
	_, err := NewOpenRouterClient(DefaultConfig(), nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestOpenRouterClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "anthropic/claude-sonnet-4", body.Model)
		assert.Equal(t, 3000, body.MaxTokens)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "group these", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"gen-1","object":"chat.completion","model":"anthropic/claude-sonnet-4",
			"choices":[{"index":0,"message":{"role":"assistant","content":"{\"chains\":[]}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	var captured LLMCallEvent
	client, err := NewOpenRouterClient(openRouterConfig(srv.URL), &captureObserver{fn: func(e LLMCallEvent) { captured = e }})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskChainGrouping,
		SystemPrompt: "You output JSON.",
		UserPrompt:   "group these",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"chains":[]}`, resp.Text)
	assert.Equal(t, "anthropic/claude-sonnet-4", resp.Model)
	assert.True(t, captured.Success)
}

func TestOpenRouterClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid key","type":"auth","code":401}}`))
	}))
	defer srv.Close()

	client, err := NewOpenRouterClient(openRouterConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskChainGrouping, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestOpenRouterClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"gen-2","object":"chat.completion","model":"m","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewOpenRouterClient(openRouterConfig(srv.URL), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskChainGrouping, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenRouterClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := NewOpenRouterClient(withChainTimeout(openRouterConfig(srv.URL), 50), nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskChainGrouping, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrTimeout)
}
