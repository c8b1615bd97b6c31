package builder

import (
	"math/rand/v2"
	"slices"

	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
	"github.com/alexanderramin/spelltree/internal/themes"
	"go.uber.org/zap"
)

// school is the working state for one category.
type school struct {
	name        string
	items       []domain.Item
	themes      []string
	matrix      *similarity.Matrix
	cfg         domain.BuildConfig
	maxChildren int
	rng         *rand.Rand
	log         *zap.Logger
	state       *buildState

	byID             map[string]domain.Item
	nodes            *domain.NodeSet
	root             string
	connected        map[string]bool
	repairIncomplete bool
}

// init creates the nodes and picks the root. It reports false when the
// category has no root candidate.
func (s *school) init() bool {
	s.nodes = domain.NewNodeSet()
	s.byID = make(map[string]domain.Item, len(s.items))
	for _, it := range s.items {
		s.nodes.Add(domain.NewTreeNode(it))
		s.byID[it.FormID] = it
	}
	root, ok := pickRoot(s.items, s.cfg, s.name, s.rng)
	if !ok {
		return false
	}
	s.root = root
	r := s.nodes.Get(root)
	r.IsRoot = true
	r.Depth = 0
	s.connected = map[string]bool{root: true}
	return true
}

func (s *school) node(id string) *domain.TreeNode { return s.nodes.Get(id) }

func (s *school) rootNode() *domain.TreeNode { return s.nodes.Get(s.root) }

func (s *school) hasCapacity(n *domain.TreeNode) bool {
	return len(n.Children) < s.maxChildren
}

// link connects parent -> child and marks the child connected.
func (s *school) link(parent, child *domain.TreeNode) {
	s.nodes.Link(parent.FormID, child.FormID)
	s.connected[child.FormID] = true
}

// jitter is a uniform draw in [-span, span).
func (s *school) jitter(span float64) float64 {
	return (s.rng.Float64()*2 - 1) * span
}

func (s *school) shuffle(ids []string) {
	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
}

// connectedNodes lists connected nodes in node order.
func (s *school) connectedNodes() []*domain.TreeNode {
	var out []*domain.TreeNode
	for _, id := range s.nodes.IDs() {
		if s.connected[id] {
			out = append(out, s.nodes.Get(id))
		}
	}
	return out
}

// unconnected lists the ids still waiting for a parent, in node order.
func (s *school) unconnected() []string {
	var out []string
	for _, id := range s.nodes.IDs() {
		if !s.connected[id] {
			out = append(out, id)
		}
	}
	return out
}

// forceConnect attaches every remaining node to the best connected node
// under w, or to the root when nothing qualifies. When keepTierDepth is
// set the node's depth is reset to its tier after linking.
func (s *school) forceConnect(w affinity.Weights, accept func(*domain.TreeNode) bool, keepTierDepth bool) {
	for _, id := range s.unconnected() {
		n := s.node(id)
		parent, _ := affinity.Best(n, s.connectedNodes(), s.matrix, w, accept)
		if parent == nil {
			parent = s.rootNode()
		}
		s.link(parent, n)
		if keepTierDepth {
			n.Depth = n.Tier
		}
	}
}

// assignPrimaryThemes tags every node with its best theme when the score
// clears the default bar, otherwise with fallback.
func (s *school) assignPrimaryThemes(fallback string) {
	for _, it := range s.items {
		s.node(it.FormID).Theme = themes.AssignedTheme(it, s.themes, themes.DefaultMinScore, fallback)
	}
}

// byTier buckets item ids by tier in input order; unknown tiers count as
// Novice.
func (s *school) byTier() [][]string {
	out := make([][]string, len(domain.Tiers))
	for _, it := range s.items {
		t := it.Tier()
		out[t] = append(out[t], it.FormID)
	}
	return out
}

func (s *school) configUsed(shape, source string, extra map[string]any) map[string]any {
	m := map[string]any{
		"shape":        shape,
		"source":       source,
		"density":      s.cfg.Density,
		"symmetry":     s.cfg.Symmetry,
		"max_children": s.maxChildren,
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// sortByTierAndCost orders items by tier (unknown last), then cost, then
// name.
func sortByTierAndCost(items []domain.Item) {
	slices.SortStableFunc(items, func(a, b domain.Item) int {
		ta, tb := domain.TierRank(a.SkillLevel), domain.TierRank(b.SkillLevel)
		if ta != tb {
			return ta - tb
		}
		if ca, cb := a.Cost(), b.Cost(); ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
}

func removeNode(list []*domain.TreeNode, n *domain.TreeNode) []*domain.TreeNode {
	return slices.DeleteFunc(list, func(c *domain.TreeNode) bool { return c == n })
}
