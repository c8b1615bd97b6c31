package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openRouterClient implements LLMClient over an OpenAI-compatible chat
// completions endpoint, OpenRouter by default.
type openRouterClient struct {
	cfg      LLMConfig
	client   *openai.Client
	observer Observer
}

// NewOpenRouterClient uses cfg.OpenRouterAPIKey, cfg.OpenRouterURL and
// cfg.OpenRouterModel. It fails with ErrMissingAPIKey when no key is set.
func NewOpenRouterClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if cfg.OpenRouterAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	oc := openai.DefaultConfig(cfg.OpenRouterAPIKey)
	if cfg.OpenRouterURL != "" {
		oc.BaseURL = cfg.OpenRouterURL
	}
	return &openRouterClient{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(oc),
		observer: observer,
	}, nil
}

func (c *openRouterClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	temp, maxTok := c.cfg.taskParams(req)
	model := c.cfg.OpenRouterModel
	if req.Model != "" {
		model = req.Model
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})
	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(temp),
		MaxTokens:   maxTok,
	}

	var lastErr error
	for i := 0; i < 1+c.cfg.MaxRetries; i++ {
		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err == nil && len(resp.Choices) == 0 {
			err = fmt.Errorf("%w: no choices in response", ErrInvalidOutput)
		}
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     model,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      resp.Choices[0].Message.Content,
				Model:     resp.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	err := fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	if ctx.Err() != nil {
		err = ErrTimeout
	}
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *openRouterClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.client.ListModels(ctx)
	return err == nil
}
