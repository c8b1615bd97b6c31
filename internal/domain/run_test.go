package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildRun_SummarizesSchoolsInOrder(t *testing.T) {
	tree := &TreeData{
		Command: "build_tree_graph",
		Seed:    42,
		LLMMode: "",
		Schools: map[string]*SchoolTree{
			"Restoration": {Root: "0x00012FCC", LayoutStyle: "graph_arborescence"},
			"Destruction": {Root: "0x00012FCD", LayoutStyle: "graph_arborescence"},
		},
		Validation: ValidationSummary{
			AllValid:       false,
			TotalNodes:     30,
			ReachableNodes: 29,
			Schools: map[string]SchoolValidation{
				"Destruction": {Valid: true, TotalNodes: 15, ReachableNodes: 15},
				"Restoration": {Valid: false, TotalNodes: 15, ReachableNodes: 14, RepairIncomplete: true},
			},
		},
	}

	run := NewBuildRun(tree, 30, 12)

	assert.Equal(t, "build_tree_graph", run.Command)
	assert.Equal(t, int64(42), run.Seed)
	assert.Equal(t, 2, run.SchoolCount)
	assert.Equal(t, 29, run.ReachableNodes)
	assert.False(t, run.AllValid)
	require.Len(t, run.Schools, 2)
	assert.Equal(t, "Destruction", run.Schools[0].School)
	assert.True(t, run.Schools[0].Valid)
	assert.Equal(t, "Restoration", run.Schools[1].School)
	assert.True(t, run.Schools[1].RepairIncomplete)
}

func TestBuildRun_DisplayID(t *testing.T) {
	assert.Equal(t, "550e8400", (&BuildRun{ID: "550e8400-e29b-41d4-a716-446655440000"}).DisplayID())
	assert.Equal(t, "abc", (&BuildRun{ID: "abc"}).DisplayID())
}

func TestSchoolTree_Shape(t *testing.T) {
	st := &SchoolTree{
		Root: "r",
		Nodes: []NodeDict{
			{FormID: "r", Children: []string{"a", "b", "c"}},
			{FormID: "a", Children: []string{"d"}},
			{FormID: "b"},
			{FormID: "c"},
			{FormID: "d", Children: []string{"r"}},
		},
	}
	depth, widest := st.Shape()
	assert.Equal(t, 2, depth)
	assert.Equal(t, 3, widest)

	depth, widest = (&SchoolTree{Root: "missing"}).Shape()
	assert.Zero(t, depth)
	assert.Zero(t, widest)
}
