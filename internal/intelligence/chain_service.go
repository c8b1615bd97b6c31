package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/spelltree/internal/builder"
	"github.com/alexanderramin/spelltree/internal/chains"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/llm"
)

var _ builder.ChainGrouper = (*ChainService)(nil)

type chainResponse struct {
	Chains []domain.Chain `json:"chains"`
}

func validateChainResponse(r chainResponse) error {
	if len(r.Chains) == 0 {
		return errors.New("missing chains array")
	}
	return nil
}

// ChainService groups spells into learning chains with an LLM. Any
// transport or parsing problem is returned as an error so the builder can
// fall back for that batch.
type ChainService struct {
	client llm.LLMClient
	model  string
}

// NewChainService creates a ChainService. An empty model leaves the
// client's default in place.
func NewChainService(client llm.LLMClient, model string) *ChainService {
	return &ChainService{client: client, model: model}
}

func (s *ChainService) GroupChains(ctx context.Context, school string, batch []domain.Item) ([]domain.Chain, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChainGrouping,
		SystemPrompt: chainSystemPrompt,
		UserPrompt:   BuildChainPrompt(school, batch),
		Model:        s.model,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("grouping %s chains: %w", school, err)
	}

	parsed, err := llm.ExtractJSON(resp.Text, validateChainResponse)
	if err != nil {
		return nil, fmt.Errorf("grouping %s chains: %w", school, err)
	}

	ids := make([]string, 0, len(batch))
	for _, it := range batch {
		ids = append(ids, it.FormID)
	}
	out := chains.Filter(parsed.Chains, ids)
	if len(out) == 0 {
		return nil, fmt.Errorf("grouping %s chains: %w: no chain names a known spell", school, llm.ErrInvalidOutput)
	}
	return out, nil
}
