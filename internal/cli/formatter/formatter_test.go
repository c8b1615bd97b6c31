package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleSchool() *domain.SchoolTree {
	return &domain.SchoolTree{
		Root:        "r",
		LayoutStyle: "graph_arborescence",
		Nodes: []domain.NodeDict{
			{FormID: "r", Name: "Flames", SkillLevel: "Novice", Children: []string{"a", "b"}},
			{FormID: "a", Name: "Firebolt", SkillLevel: "Apprentice", Children: []string{"c"}, Prerequisites: []string{"r"}},
			{FormID: "b", Name: "Fire Rune", SkillLevel: "Adept", Children: []string{"c"}, Prerequisites: []string{"r"}},
			{FormID: "c", Name: "Fireball", SkillLevel: "Expert", Prerequisites: []string{"a", "b"}},
			{FormID: "x", Name: "Lost Spark", SkillLevel: "Novice"},
		},
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"xxx", "y"}, {"z", "wwww"}}))
	assert.Equal(t, "A    BB\n───  ────\nxxx  y\nz    wwww\n", out)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func TestSchoolTreeItems_WalksChildrenAndMarksLinks(t *testing.T) {
	items := SchoolTreeItems(sampleSchool())
	require.Len(t, items, 6)

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = stripANSI(it.Title)
	}
	assert.Equal(t, []string{"Flames", "Firebolt", "Fireball", "Fire Rune", "Fireball", "Lost Spark"}, titles)

	assert.Equal(t, StatusRoot, items[0].Status)
	assert.Equal(t, 2, items[2].Level)
	assert.Equal(t, StatusLink, items[4].Status, "second parent shows a link")
	assert.Empty(t, items[4].Detail)
	assert.Equal(t, StatusOrphan, items[5].Status)
	assert.True(t, items[3].IsLast)
}

func TestRenderTree_Connectors(t *testing.T) {
	out := stripANSI(RenderTree(SchoolTreeItems(sampleSchool())))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[0], "★ Flames"))
	assert.True(t, strings.HasPrefix(lines[1], "├─ Firebolt"))
	assert.True(t, strings.HasPrefix(lines[2], "│  └─ Fireball"))
	assert.True(t, strings.HasPrefix(lines[3], "└─ Fire Rune"))
	assert.True(t, strings.HasPrefix(lines[4], "   └─ ↳ Fireball"), "closed ancestor leaves a blank guide")
	assert.True(t, strings.HasPrefix(lines[5], "✖ Lost Spark"))
	assert.Contains(t, lines[0], "[ Novice ]")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}

func TestFormatTreeView_FiltersSchool(t *testing.T) {
	tree := &domain.TreeData{Schools: map[string]*domain.SchoolTree{
		"Destruction": sampleSchool(),
		"Illusion":    {Root: "i", LayoutStyle: "radial", Nodes: []domain.NodeDict{{FormID: "i", Name: "Fury"}}},
	}}

	all := stripANSI(FormatTreeView(tree, ""))
	assert.Contains(t, all, "DESTRUCTION")
	assert.Contains(t, all, "ILLUSION")
	assert.Less(t, strings.Index(all, "DESTRUCTION"), strings.Index(all, "ILLUSION"))

	one := stripANSI(FormatTreeView(tree, "Illusion"))
	assert.NotContains(t, one, "DESTRUCTION")
	assert.Contains(t, one, "radial · 1 nodes · depth 0 · widest 0")
}

func TestFormatSchool_ChainsAndBranches(t *testing.T) {
	st := sampleSchool()
	st.Chains = []domain.Chain{{Name: "Path of Fire", SpellIDs: []string{"r", "a"}, Narrative: "Heat rises."}}
	st.Branches = []domain.Branch{{Theme: "fire", AttachmentPoint: "r", SpellIDs: []string{"a", "b"}}}

	out := stripANSI(FormatSchool("Destruction", st))
	assert.Contains(t, out, "Path of Fire (2)")
	assert.Contains(t, out, "Heat rises.")
	assert.Contains(t, out, "fire at r (2)")
}

func TestFormatBuildSummary(t *testing.T) {
	tree := &domain.TreeData{
		Command: "build_tree_oracle",
		Seed:    7,
		LLMMode: "mixed",
		Schools: map[string]*domain.SchoolTree{"Destruction": sampleSchool()},
		Validation: domain.ValidationSummary{
			AllValid: false, TotalNodes: 5, ReachableNodes: 4,
			Schools: map[string]domain.SchoolValidation{
				"Destruction": {Valid: false, TotalNodes: 5, ReachableNodes: 4},
			},
		},
	}

	out := stripANSI(FormatBuildSummary(tree, 1500, "0123456789abcdef"))
	assert.Contains(t, out, "BUILD SUMMARY")
	assert.Contains(t, out, "oracle")
	assert.Contains(t, out, "mixed")
	assert.Contains(t, out, "4/5")
	assert.Contains(t, out, "● INVALID")
	assert.Contains(t, out, "1.5 s")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "89abcdef")
	assert.Contains(t, out, "graph_arborescence")
}

func TestFormatCompare(t *testing.T) {
	resp := &app.CompareResponse{
		Seed: 42,
		Rows: []app.StrategyStats{
			{Command: "build_tree_classic", Success: true, Schools: 2, TotalNodes: 27, ReachableNodes: 27, AllValid: true, MaxDepth: 6, WidestNode: 3, Elapsed: 12 * time.Millisecond},
			{Command: "build_tree", Success: true, Schools: 2, TotalNodes: 27, ReachableNodes: 27, AllValid: true, MaxDepth: 5, WidestNode: 3, Elapsed: 9 * time.Millisecond},
			{Command: "build_tree_graph", Success: false, Error: "boom"},
		},
	}

	out := stripANSI(FormatCompare(resp))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "STRATEGY COMPARISON", lines[0])
	assert.Equal(t, "seed 42", lines[2])
	assert.True(t, strings.HasPrefix(lines[4], "STRATEGY  SCHOOLS  NODES  REACHABLE  MAX DEPTH"))
	assert.True(t, strings.HasPrefix(lines[6], "classic   2        27     27         6"))
	assert.True(t, strings.HasPrefix(lines[7], "tree "))
	assert.Contains(t, out, "● VALID")
	assert.Contains(t, out, "✖ boom")
}

func TestFormatValidation(t *testing.T) {
	v := domain.ValidationSummary{
		AllValid: false, TotalNodes: 10, ReachableNodes: 3, RepairIncomplete: true,
		Schools: map[string]domain.SchoolValidation{},
	}
	v.Schools["Illusion"] = domain.SchoolValidation{Valid: true, TotalNodes: 3, ReachableNodes: 3}
	v.Schools["Alteration"] = domain.SchoolValidation{
		Valid: false, TotalNodes: 7, ReachableNodes: 0, Cycles: 1,
		Unreachable: []string{"a", "b", "c", "d", "e", "f", "g"},
		Warnings:    []string{"node a has 6 children"},
	}

	out := stripANSI(FormatValidation(v))
	assert.Less(t, strings.Index(out, "Alteration"), strings.Index(out, "Illusion"))
	assert.Contains(t, out, "1 cycle(s)")
	assert.Contains(t, out, "unreachable: a, b, c, d, e (+2 more)")
	assert.Contains(t, out, "! node a has 6 children")
	assert.Contains(t, out, "▲ INCOMPLETE")
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []*domain.BuildRun{
		{ID: "aaaaaaaa-1111", Command: "build_tree_graph", Seed: 5, ItemCount: 15, SchoolCount: 1, TotalNodes: 15, ReachableNodes: 15, AllValid: true, ElapsedMs: 80, CreatedAt: now.Add(-5 * time.Minute)},
		{ID: "bbbbbbbb-2222", Command: "build_tree", Seed: 9, CreatedAt: now.Add(-72 * time.Hour)},
	}

	out := stripANSI(FormatHistory(runs, now))
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "-1111")
	assert.Contains(t, out, "5m ago")
	assert.Contains(t, out, "Feb 26, 2026")
	assert.Contains(t, out, "graph")
	assert.Contains(t, out, "15/15")

	assert.Contains(t, stripANSI(FormatHistory(nil, now)), "No builds recorded yet.")
}

func TestFormatRun(t *testing.T) {
	run := &domain.BuildRun{
		ID: "cccccccc-3333", Command: "build_tree_thematic", Seed: 3, ItemCount: 4,
		TotalNodes: 4, ReachableNodes: 4, AllValid: true, OutputPath: "out.json",
		Schools: []domain.RunSchool{{School: "Restoration", Root: "r1", LayoutStyle: "thematic_bfs", TotalNodes: 4, ReachableNodes: 4, Valid: true}},
	}

	out := stripANSI(FormatRun(run))
	assert.Contains(t, out, "BUILD CCCCCCCC")
	assert.Contains(t, out, "thematic")
	assert.Contains(t, out, "out.json")
	assert.Contains(t, out, "Restoration")
	assert.Contains(t, out, "thematic_bfs")
	assert.NotContains(t, out, "input")
}

func TestStrategyLabel(t *testing.T) {
	tests := map[string]string{
		"build_tree":         "tree",
		"build_tree_classic": "classic",
		"build_tree_oracle":  "oracle",
		"something_else":     "something_else",
		"":                   "-",
	}
	for in, want := range tests {
		assert.Equal(t, want, StrategyLabel(in), in)
	}
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-42 * time.Minute), "42m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"older", now.Add(-10 * 24 * time.Hour), "Feb 19, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.at, now))
		})
	}
}

func TestRenderReachability(t *testing.T) {
	assert.Equal(t, "[████░░░░] 2/4", stripANSI(RenderReachability(2, 4, 8)))
	assert.Equal(t, "[████████] 4/4", stripANSI(RenderReachability(9, 4, 8)), "clamped to total")
	assert.Equal(t, "[░░] 0/0", stripANSI(RenderReachability(0, 0, 1)))
}

func TestValidityIndicator(t *testing.T) {
	assert.Equal(t, "● VALID", stripANSI(ValidityIndicator(true, false)))
	assert.Equal(t, "● INVALID", stripANSI(ValidityIndicator(false, false)))
	assert.Equal(t, "▲ INCOMPLETE", stripANSI(ValidityIndicator(true, true)))
}
