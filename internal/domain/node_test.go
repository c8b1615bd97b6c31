package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSet(ids ...string) *NodeSet {
	s := NewNodeSet()
	for _, id := range ids {
		s.Add(&TreeNode{FormID: id, Name: id})
	}
	return s
}

func TestNodeSet_LinkKeepsBothSidesInSync(t *testing.T) {
	s := newSet("a", "b")
	require.True(t, s.Link("a", "b"))

	assert.Equal(t, []string{"b"}, s.Get("a").Children)
	assert.Equal(t, []string{"a"}, s.Get("b").Prerequisites)
	assert.Equal(t, 1, s.Get("b").Depth)

	assert.False(t, s.Link("a", "b"), "duplicate edge")
	assert.False(t, s.Link("a", "a"), "self edge")
	assert.False(t, s.Link("a", "missing"))
}

func TestNodeSet_LinkGateKeepsDepth(t *testing.T) {
	s := newSet("a", "b", "c")
	s.Link("a", "b")
	s.Get("c").Depth = 4

	require.True(t, s.LinkGate("b", "c"))
	assert.Equal(t, 4, s.Get("c").Depth)
	assert.True(t, s.Get("c").HasPrerequisite("b"))
}

func TestNodeSet_Unlink(t *testing.T) {
	s := newSet("a", "b")
	s.Link("a", "b")
	s.Unlink("a", "b")

	assert.Empty(t, s.Get("a").Children)
	assert.Empty(t, s.Get("b").Prerequisites)
}

func TestNodeSet_UnlinkMissingParent(t *testing.T) {
	s := newSet("b")
	s.Get("b").Prerequisites = []string{"ghost"}
	s.Unlink("ghost", "b")
	assert.Empty(t, s.Get("b").Prerequisites)
}

func TestNodeSet_IsDescendant(t *testing.T) {
	s := newSet("a", "b", "c", "d")
	s.Link("a", "b")
	s.Link("b", "c")

	assert.True(t, s.IsDescendant("a", "c"))
	assert.False(t, s.IsDescendant("c", "a"))
	assert.False(t, s.IsDescendant("a", "d"))
}

func TestTreeNode_ToDict(t *testing.T) {
	n := &TreeNode{FormID: "0x1", Name: "Flames", SkillLevel: "Unknown", Depth: 2, Theme: "fire"}
	d := n.ToDict()

	assert.Equal(t, 3, d.Tier)
	assert.Empty(t, d.SkillLevel)
	assert.NotNil(t, d.Children)
	assert.NotNil(t, d.Prerequisites)
	assert.Equal(t, "fire", d.Theme)
}
