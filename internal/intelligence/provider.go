package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/llm"
)

// NewChainGrouper builds a ChainService for the provider named in a build
// request. Request fields override the environment: api_key, model and
// url replace the OpenRouter key, model and base URL, or the Ollama model
// and endpoint.
func NewChainGrouper(api domain.LLMAPIConfig, cfg llm.LLMConfig, observer llm.Observer) (*ChainService, error) {
	switch provider := strings.ToLower(strings.TrimSpace(api.Provider)); provider {
	case "", llm.ProviderOpenRouter:
		if api.APIKey != "" {
			cfg.OpenRouterAPIKey = api.APIKey
		}
		if api.URL != "" {
			cfg.OpenRouterURL = api.URL
		}
		if api.Model != "" {
			cfg.OpenRouterModel = api.Model
		}
		client, err := llm.NewOpenRouterClient(cfg, observer)
		if err != nil {
			return nil, fmt.Errorf("openrouter provider: %w", err)
		}
		return NewChainService(client, ""), nil
	case llm.ProviderOllama:
		if api.URL != "" {
			cfg.Endpoint = api.URL
		}
		if api.Model != "" {
			cfg.Model = api.Model
		}
		return NewChainService(llm.NewOllamaClient(cfg, observer), ""), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
