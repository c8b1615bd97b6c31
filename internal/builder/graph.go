package builder

import (
	"context"
	"sort"

	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/domain"
)

const (
	branchingPasses = 10
	orderingPasses  = 5
)

// buildGraph builds a greedy arborescence tier by tier, then repairs it:
// overloaded parents hand their weakest children to siblings and children
// that do not sit above their parent's tier are moved to a lower-tier
// parent. Depth is finally recomputed from the root.
func buildGraph(_ context.Context, s *school) *domain.SchoolTree {
	if !s.init() {
		return nil
	}
	s.assignPrimaryThemes("")

	available := map[int][]*domain.TreeNode{0: {s.rootNode()}}
	for tier, ids := range s.byTier() {
		order := make([]string, 0, len(ids))
		for _, id := range ids {
			if id != s.root {
				order = append(order, id)
			}
		}
		s.shuffle(order)

		var placed []*domain.TreeNode
		for _, id := range order {
			n := s.node(id)
			parent := s.graphParent(n, tier, available)
			if parent == nil {
				continue
			}
			s.link(parent, n)
			n.Depth = tier
			placed = append(placed, n)
			if !s.hasCapacity(parent) {
				for t := range available {
					available[t] = removeNode(available[t], parent)
				}
			}
		}
		for _, n := range placed {
			if s.hasCapacity(n) {
				available[tier] = append(available[tier], n)
			}
		}
	}

	root := s.rootNode()
	for _, id := range s.unconnected() {
		s.link(root, s.node(id))
	}

	if !s.constrainBranching() {
		s.repairIncomplete = true
	}
	if !s.enforceTierOrdering() {
		s.repairIncomplete = true
	}
	assignDepthsBFS(s.nodes, s.root)

	return &domain.SchoolTree{
		LayoutStyle: "graph_arborescence",
		Color:       domain.SchoolColor(s.name, domain.DefaultSchoolColor),
		ConfigUsed: s.configUsed("graph_arborescence", "graph", map[string]any{
			"chaos":         s.cfg.Chaos,
			"force_balance": s.cfg.ForceBalance,
		}),
	}
}

// graphParent searches open nodes from n's own tier downwards and stops at
// the first tier that offers any candidate. The root is always searchable
// from tier 0, but the tier distance uses its real tier. Text similarity
// only counts in proportion to chaos.
func (s *school) graphParent(n *domain.TreeNode, tier int, available map[int][]*domain.TreeNode) *domain.TreeNode {
	var best *domain.TreeNode
	var bestScore float64
	for search := tier; search >= 0; search-- {
		for _, c := range available[search] {
			if !s.hasCapacity(c) {
				continue
			}
			score := 40*s.matrix.Effect(n.FormID, c.FormID) +
				30*s.cfg.Chaos*s.matrix.Text(n.FormID, c.FormID) +
				20*s.matrix.Name(n.FormID, c.FormID)
			if n.Theme != "" && n.Theme == c.Theme {
				score += 15
			}
			switch td := tier - c.Tier; {
			case td == 1:
				score += 10
			case td == 0:
				score += 5
			case td > 2:
				score -= 5 * float64(td-2)
			}
			score -= 6 * float64(len(c.Children))
			score += s.jitter(2)
			if best == nil || score > bestScore {
				best, bestScore = c, score
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// constrainBranching keeps the children of an overloaded node that
// resemble it most and reroutes the rest. It reports false when some node
// is still over the cap after the last pass.
func (s *school) constrainBranching() bool {
	for range branchingPasses {
		changed := false
		for _, id := range s.nodes.IDs() {
			n := s.node(id)
			if len(n.Children) <= s.maxChildren {
				continue
			}
			type scored struct {
				id    string
				score float64
			}
			ranked := make([]scored, 0, len(n.Children))
			for _, cid := range n.Children {
				ranked = append(ranked, scored{cid, 30*s.matrix.Effect(id, cid) +
					20*s.matrix.Text(id, cid) +
					10*s.matrix.Name(id, cid)})
			}
			sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

			keep := make([]*domain.TreeNode, 0, s.maxChildren)
			for _, r := range ranked[:s.maxChildren] {
				keep = append(keep, s.node(r.id))
			}
			for _, r := range ranked[s.maxChildren:] {
				child := s.node(r.id)
				if child == nil {
					continue
				}
				target := s.adoptingSibling(child, keep)
				if target == nil {
					target = s.openParent(n, child, true)
				}
				if target == nil {
					// Any tier will do; enforceTierOrdering lifts it later if it can.
					target = s.openParent(n, child, false)
				}
				if target == nil {
					continue
				}
				s.nodes.Unlink(id, child.FormID)
				s.nodes.Link(target.FormID, child.FormID)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return !s.overCap()
}

// openParent finds a connected node with room for child outside child's
// own subtree, optionally limited to tiers at or below the child's.
func (s *school) openParent(from, child *domain.TreeNode, sameOrLowerTier bool) *domain.TreeNode {
	target, _ := affinity.Best(child, s.connectedNodes(), s.matrix, affinity.ForceConnectWeights(), func(c *domain.TreeNode) bool {
		if c == from || c == child || !s.hasCapacity(c) {
			return false
		}
		if sameOrLowerTier && c.Tier > child.Tier {
			return false
		}
		return !s.nodes.IsDescendant(child.FormID, c.FormID)
	})
	return target
}

func (s *school) overCap() bool {
	for _, id := range s.nodes.IDs() {
		if len(s.node(id).Children) > s.maxChildren {
			return true
		}
	}
	return false
}

func (s *school) adoptingSibling(child *domain.TreeNode, keep []*domain.TreeNode) *domain.TreeNode {
	var best *domain.TreeNode
	var bestScore float64
	for _, sib := range keep {
		if sib == nil || !s.hasCapacity(sib) || s.nodes.IsDescendant(child.FormID, sib.FormID) {
			continue
		}
		score := 30*s.matrix.Effect(sib.FormID, child.FormID) +
			20*s.matrix.Text(sib.FormID, child.FormID) -
			5*float64(len(sib.Children))
		if best == nil || score > bestScore {
			best, bestScore = sib, score
		}
	}
	return best
}

// enforceTierOrdering moves a child whose tier does not exceed its
// non-root parent's tier under a lower-tier node with room. It reports
// whether the passes settled before the cap.
func (s *school) enforceTierOrdering() bool {
	for range orderingPasses {
		moved := false
		for _, id := range s.nodes.IDs() {
			if id == s.root {
				continue
			}
			n := s.node(id)
			for _, cid := range append([]string(nil), n.Children...) {
				child := s.node(cid)
				if child == nil || child.Tier > n.Tier {
					continue
				}
				var target *domain.TreeNode
				var bestScore float64
				for _, c := range s.connectedNodes() {
					if c == child || c == n || c.Tier >= child.Tier || !s.hasCapacity(c) ||
						s.nodes.IsDescendant(cid, c.FormID) {
						continue
					}
					score := 20*s.matrix.Effect(c.FormID, cid) +
						15*s.matrix.Text(c.FormID, cid) -
						5*float64(len(c.Children)) -
						3*float64(abs(child.Tier-c.Tier-1))
					if target == nil || score > bestScore {
						target, bestScore = c, score
					}
				}
				if target == nil {
					continue
				}
				s.nodes.Unlink(id, cid)
				s.nodes.Link(target.FormID, cid)
				moved = true
			}
		}
		if !moved {
			return true
		}
	}
	return false
}

// assignDepthsBFS sets depth to the distance from the root along child
// edges. Nodes the walk never reaches fall back to their tier.
func assignDepthsBFS(nodes *domain.NodeSet, root string) {
	r := nodes.Get(root)
	if r == nil {
		return
	}
	r.Depth = 0
	visited := map[string]bool{root: true}
	queue := []*domain.TreeNode{r}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, cid := range cur.Children {
			if visited[cid] {
				continue
			}
			if c := nodes.Get(cid); c != nil {
				c.Depth = cur.Depth + 1
				visited[cid] = true
				queue = append(queue, c)
			}
		}
	}
	for _, id := range nodes.IDs() {
		if !visited[id] {
			nodes.Get(id).Depth = nodes.Get(id).Tier
		}
	}
}
