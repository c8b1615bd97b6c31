package domain

import "slices"

// TreeNode is the mutable build-time view of an item. Edges are only
// changed through NodeSet.Link, NodeSet.LinkGate and NodeSet.Unlink so
// that Children and Prerequisites always mirror each other.
type TreeNode struct {
	FormID        string
	Name          string
	School        string
	SkillLevel    string
	Tier          int
	Theme         string
	Section       string
	Chain         string
	ThemeColor    string
	Children      []string
	Prerequisites []string
	Depth         int
	IsRoot        bool
}

// NewTreeNode creates an unlinked node for it.
func NewTreeNode(it Item) *TreeNode {
	return &TreeNode{
		FormID:     it.FormID,
		Name:       it.Name,
		School:     it.School,
		SkillLevel: it.SkillLevel,
		Tier:       it.Tier(),
	}
}

func (n *TreeNode) HasChild(id string) bool {
	return slices.Contains(n.Children, id)
}

func (n *TreeNode) HasPrerequisite(id string) bool {
	return slices.Contains(n.Prerequisites, id)
}

// ToDict converts the node to its serialized shape. Tier in the output is
// the one-based depth.
func (n *TreeNode) ToDict() NodeDict {
	d := NodeDict{
		FormID:        n.FormID,
		Children:      append([]string{}, n.Children...),
		Prerequisites: append([]string{}, n.Prerequisites...),
		Tier:          n.Depth + 1,
		Name:          n.Name,
		Section:       n.Section,
		Theme:         n.Theme,
		Chain:         n.Chain,
		ThemeColor:    n.ThemeColor,
	}
	if n.SkillLevel != "Unknown" {
		d.SkillLevel = n.SkillLevel
	}
	return d
}

// NodeSet holds the nodes of one category in insertion order.
type NodeSet struct {
	order []string
	nodes map[string]*TreeNode
}

func NewNodeSet() *NodeSet {
	return &NodeSet{nodes: make(map[string]*TreeNode)}
}

// Add inserts n, replacing any node with the same id but keeping its
// original position.
func (s *NodeSet) Add(n *TreeNode) {
	if _, ok := s.nodes[n.FormID]; !ok {
		s.order = append(s.order, n.FormID)
	}
	s.nodes[n.FormID] = n
}

// Get returns the node for id, or nil.
func (s *NodeSet) Get(id string) *TreeNode {
	return s.nodes[id]
}

func (s *NodeSet) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// IDs returns node ids in insertion order. The slice must not be modified.
func (s *NodeSet) IDs() []string {
	return s.order
}

func (s *NodeSet) Len() int {
	return len(s.order)
}

// Link adds the edge parent -> child and places the child one level below
// the parent. It reports false when the edge already exists or either end
// is missing.
func (s *NodeSet) Link(parentID, childID string) bool {
	if !s.LinkGate(parentID, childID) {
		return false
	}
	s.nodes[childID].Depth = s.nodes[parentID].Depth + 1
	return true
}

// LinkGate adds an extra prerequisite edge without moving the child.
func (s *NodeSet) LinkGate(parentID, childID string) bool {
	if parentID == childID {
		return false
	}
	p, c := s.nodes[parentID], s.nodes[childID]
	if p == nil || c == nil || p.HasChild(childID) {
		return false
	}
	p.Children = append(p.Children, childID)
	if !c.HasPrerequisite(parentID) {
		c.Prerequisites = append(c.Prerequisites, parentID)
	}
	return true
}

// Unlink removes the edge parent -> child from both sides. A missing
// parent still has its id dropped from the child's prerequisites.
func (s *NodeSet) Unlink(parentID, childID string) {
	if p := s.nodes[parentID]; p != nil {
		p.Children = slices.DeleteFunc(p.Children, func(id string) bool { return id == childID })
	}
	if c := s.nodes[childID]; c != nil {
		c.Prerequisites = slices.DeleteFunc(c.Prerequisites, func(id string) bool { return id == parentID })
	}
}

// ClearEdges drops every edge in the set.
func (s *NodeSet) ClearEdges() {
	for _, n := range s.nodes {
		n.Children = nil
		n.Prerequisites = nil
	}
}

// IsDescendant reports whether target can be reached from id by following
// children edges.
func (s *NodeSet) IsDescendant(id, target string) bool {
	seen := map[string]bool{id: true}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := s.nodes[cur]
		if n == nil {
			continue
		}
		for _, c := range n.Children {
			if c == target {
				return true
			}
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return false
}

// Dicts serializes every node in insertion order.
func (s *NodeSet) Dicts() []NodeDict {
	out := make([]NodeDict, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id].ToDict())
	}
	return out
}
