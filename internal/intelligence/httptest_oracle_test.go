package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/spelltree/internal/builder"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/llm"
	"github.com/alexanderramin/spelltree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ollamaReplying serves every chat request with content.
func ollamaReplying(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"model":   "llama3.2",
			"message": map[string]string{"role": "assistant", "content": content},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func oracleConfig(url string) domain.BuildConfig {
	cfg := domain.DefaultBuildConfig()
	cfg.Seed = 21
	cfg.LLMAPI = domain.LLMAPIConfig{Enabled: true, Provider: "ollama", URL: url}
	return cfg
}

func TestOracleBuild_ChainsFromOllama(t *testing.T) {
	items := testutil.DestructionItems()
	var fire, frost, shock []string
	for _, it := range items {
		switch {
		case strings.Contains(it.Description, "fire"):
			fire = append(fire, it.FormID)
		case strings.Contains(it.Description, "ice") || strings.Contains(it.Description, "cold"):
			frost = append(frost, it.FormID)
		default:
			shock = append(shock, it.FormID)
		}
	}
	reply, err := json.Marshal(map[string]any{"chains": []domain.Chain{
		{Name: "Pyromancy", Narrative: "Fire grows", SpellIDs: fire},
		{Name: "Cryomancy", Narrative: "Cold deepens", SpellIDs: frost},
		{Name: "Storms", Narrative: "Lightning leaps", SpellIDs: shock},
	}})
	require.NoError(t, err)

	cfg := oracleConfig(ollamaReplying(t, string(reply)).URL)
	grouper, err := NewChainGrouper(cfg.LLMAPI, llm.DefaultConfig(), nil)
	require.NoError(t, err)

	res := builder.Build(context.Background(), builder.CommandOracle, items, cfg,
		builder.Options{Grouper: grouper, LLMTimeout: 5 * time.Second})
	require.True(t, res.Success, res.Error)

	assert.Equal(t, "llm", res.Tree.LLMMode)
	st := res.Tree.Schools["Destruction"]
	require.NotNil(t, st)
	assert.Equal(t, "oracle_llm", st.LayoutStyle)
	assert.NotEmpty(t, st.Chains)
	assert.Len(t, st.Nodes, len(items))
	assert.True(t, res.Tree.Validation.AllValid)
}

func TestOracleBuild_GarbageReplyFallsBack(t *testing.T) {
	items := testutil.DestructionItems()
	cfg := oracleConfig(ollamaReplying(t, "I would rather not.").URL)
	grouper, err := NewChainGrouper(cfg.LLMAPI, llm.DefaultConfig(), nil)
	require.NoError(t, err)

	res := builder.Build(context.Background(), builder.CommandOracle, items, cfg,
		builder.Options{Grouper: grouper, LLMTimeout: 5 * time.Second})
	require.True(t, res.Success, res.Error)

	assert.Equal(t, "mixed", res.Tree.LLMMode)
	assert.Equal(t, "oracle_cluster_lane", res.Tree.Schools["Destruction"].LayoutStyle)
	assert.Len(t, res.Tree.Schools["Destruction"].Nodes, len(items))
}
