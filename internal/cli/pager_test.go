package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/spelltree/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longContent(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func sized(t *testing.T, m pagerModel, w, h int) pagerModel {
	t.Helper()
	model, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return model.(pagerModel)
}

func TestPager_LoadingUntilSized(t *testing.T) {
	m := newPagerModel("tree.json", "x")
	assert.Equal(t, "loading...", m.View())
}

func TestPager_ScrollsAndJumps(t *testing.T) {
	m := sized(t, newPagerModel("tree.json", longContent(50)), 80, 14)

	view := m.View()
	assert.Contains(t, view, "tree.json")
	assert.Contains(t, view, "line 1")
	assert.NotContains(t, view, "line 50")
	assert.Contains(t, view, "[TOP]")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = model.(pagerModel)
	assert.Equal(t, 1, m.vp.YOffset)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	m = model.(pagerModel)
	assert.True(t, m.vp.AtBottom())
	assert.Contains(t, m.View(), "line 50")
	assert.Contains(t, m.View(), "[END]")

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	m = model.(pagerModel)
	assert.True(t, m.vp.AtTop())
}

func TestPager_ShortContentShowsAll(t *testing.T) {
	m := sized(t, newPagerModel("t", "only line"), 80, 40)
	assert.Contains(t, m.View(), "[ALL]")
}

func TestPager_ResizeKeepsContent(t *testing.T) {
	m := sized(t, newPagerModel("t", longContent(30)), 80, 10)
	m = sized(t, m, 100, 20)
	assert.Equal(t, 100, m.vp.Width)
	assert.Equal(t, 20-pagerChrome, m.vp.Height)
	assert.Contains(t, m.View(), "line 1")
}

func TestPager_QuitKeys(t *testing.T) {
	m := sized(t, newPagerModel("t", "x"), 80, 10)
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
	}
}

func TestConfigFormValues_Apply(t *testing.T) {
	cfg := domain.DefaultBuildConfig()
	v := newConfigFormValues(cfg)
	v.MaxChildren = "5"
	v.Density = "0.25"
	v.BranchStyle = "fan"
	v.LLMEnabled = true
	v.LLMProvider = "ollama"

	require.NoError(t, v.apply(&cfg))
	assert.Equal(t, 5, cfg.MaxChildrenPerNode)
	assert.InDelta(t, 0.25, cfg.Density, 1e-9)
	assert.Equal(t, "fan", cfg.BranchStyle)
	assert.True(t, cfg.LLMAPI.Enabled)
	assert.Equal(t, "ollama", cfg.LLMAPI.Provider)
}

func TestConfigFormValues_ApplyReportsEveryProblem(t *testing.T) {
	cfg := domain.DefaultBuildConfig()
	v := newConfigFormValues(cfg)
	v.MaxChildren = "12"
	v.Chaos = "lots"

	err := v.apply(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max children")
	assert.Contains(t, err.Error(), "chaos")
	assert.Equal(t, 3, cfg.MaxChildrenPerNode, "config untouched on error")
}

func TestValidateRange(t *testing.T) {
	check := validateRange(0, 1)
	assert.NoError(t, check("0.5"))
	assert.NoError(t, check(" 1 "))
	assert.Error(t, check("1.5"))
	assert.Error(t, check("abc"))
}
