package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildConfig_EmptyDocumentIsDefaults(t *testing.T) {
	cfg, err := ParseBuildConfig([]byte("  "), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBuildConfig(), cfg)
}

func TestParseBuildConfig_SnakeCaseJSON(t *testing.T) {
	raw := `{
		"seed": 42,
		"max_children_per_node": 4,
		"density": 0.9,
		"auto_fix_unreachable": false,
		"branch_style": "fan",
		"selected_roots": {"Destruction": "0x00012FCD", "Restoration": {"formId": "0x00012FCC", "name": "Healing"}},
		"llm_api": {"enabled": true, "provider": "ollama", "model": "llama3.2"}
	}`
	cfg, err := ParseBuildConfig([]byte(raw), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 4, cfg.MaxChildrenPerNode)
	assert.InDelta(t, 0.9, cfg.Density, 1e-9)
	assert.False(t, cfg.AutoFixUnreachable)
	assert.Equal(t, "fan", cfg.BranchStyle)
	assert.Equal(t, map[string]string{"Destruction": "0x00012FCD", "Restoration": "0x00012FCC"}, cfg.SelectedRoots)
	assert.True(t, cfg.LLMAPI.Enabled)
	assert.Equal(t, "ollama", cfg.LLMAPI.Provider)
	assert.Nil(t, cfg.GridHint)
	// Untouched fields keep defaults.
	assert.Equal(t, 20, cfg.BatchSize)
	assert.InDelta(t, 0.4, cfg.ConvergenceChance, 1e-9)
}

func TestParseBuildConfig_CamelCaseYAML(t *testing.T) {
	raw := `
seed: 7
maxChildrenPerNode: 2
convergenceChance: 0.1
llmApi:
  enabled: true
  apiKey: sk-test
gridHint:
  schoolCount: 6
`
	cfg, err := ParseBuildConfig([]byte(raw), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 2, cfg.MaxChildrenPerNode)
	assert.InDelta(t, 0.1, cfg.ConvergenceChance, 1e-9)
	assert.True(t, cfg.LLMAPI.Enabled)
	assert.Equal(t, "sk-test", cfg.LLMAPI.APIKey)
	assert.Equal(t, "openrouter", cfg.LLMAPI.Provider)
	require.NotNil(t, cfg.GridHint)
	assert.Equal(t, domain.GridHint{Mode: "sun", SchoolCount: 6}, *cfg.GridHint)
}

func TestParseBuildConfig_MalformedFieldsFallBack(t *testing.T) {
	raw := `{
		"seed": "not a number",
		"max_children_per_node": "five",
		"density": [1, 2],
		"auto_fix_unreachable": "yes please",
		"branch_style": 12,
		"selected_roots": {"Alteration": {"name": "no id"}, "Illusion": 5},
		"llm_api": "enabled"
	}`
	cfg, err := ParseBuildConfig([]byte(raw), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBuildConfig(), cfg)
}

func TestParseBuildConfig_NumericStrings(t *testing.T) {
	cfg, err := ParseBuildConfig([]byte(`{"seed": "12345", "chaos": "0.25", "prefer_vanilla_roots": "false"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.InDelta(t, 0.25, cfg.Chaos, 1e-9)
	assert.False(t, cfg.PreferVanillaRoots)
}

func TestParseBuildConfig_SyntaxError(t *testing.T) {
	_, err := ParseBuildConfig([]byte(`{"seed": `), FormatJSON)
	assert.Error(t, err)

	_, err = ParseBuildConfig([]byte("seed: [unclosed"), FormatYAML)
	assert.Error(t, err)
}

func TestLoadBuildConfig(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadBuildConfig("")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultBuildConfig(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadBuildConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("yml extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yml")
		require.NoError(t, os.WriteFile(path, []byte("batch_size: 8\n"), 0644))
		cfg, err := LoadBuildConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.BatchSize)
	})
}

func TestWriteBuildConfig_RoundTrips(t *testing.T) {
	want := domain.DefaultBuildConfig()
	want.Seed = 99
	want.SelectedRoots = map[string]string{"Destruction": "0x00012FCD"}
	want.GridHint = &domain.GridHint{Mode: "flat", SchoolCount: 3, AvgPointsPerSchool: 40}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", "cfg."+string(format))
			require.NoError(t, WriteBuildConfig(path, want, format))

			got, err := LoadBuildConfig(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("a.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("a.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("a"))
}
