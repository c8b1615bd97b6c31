package builder

import (
	"context"

	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/domain"
)

// buildClassic places items strictly tier by tier. Within a tier the
// visiting order is shuffled and each item takes the best parent from the
// nearest lower tier that still has room. Depth always equals tier.
func buildClassic(_ context.Context, s *school) *domain.SchoolTree {
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

		for _, id := range order {
			n := s.node(id)
			parent := s.classicParent(n, tier, available)
			if parent == nil {
				continue
			}
			s.link(parent, n)
			n.Depth = tier
			if !s.hasCapacity(parent) {
				available[parent.Depth] = removeNode(available[parent.Depth], parent)
			}
			if s.hasCapacity(n) {
				available[tier] = append(available[tier], n)
			}
		}
	}

	s.forceConnect(affinity.OrphanWeights(), nil, true)

	return &domain.SchoolTree{
		LayoutStyle: "tier_first",
		Color:       domain.SchoolColor(s.name, domain.DefaultSchoolColor),
		ConfigUsed:  s.configUsed("tier_first", "classic", nil),
	}
}

// classicParent scores candidates from the nearest lower tier with room.
// Novice items may hang off other Novice nodes. As a last resort any
// connected node up to two over capacity is considered, with a heavy tier
// penalty.
func (s *school) classicParent(n *domain.TreeNode, tier int, available map[int][]*domain.TreeNode) *domain.TreeNode {
	type cand struct {
		node     *domain.TreeNode
		tierDist int
	}
	var cands []cand
	for d := tier - 1; d >= 0 && len(cands) == 0; d-- {
		for _, c := range available[d] {
			if s.hasCapacity(c) {
				cands = append(cands, cand{c, tier - d})
			}
		}
	}
	if len(cands) == 0 && tier == 0 {
		for _, c := range available[0] {
			if s.hasCapacity(c) {
				cands = append(cands, cand{c, 0})
			}
		}
	}
	if len(cands) == 0 {
		for _, c := range s.connectedNodes() {
			if len(c.Children) < s.maxChildren+2 {
				cands = append(cands, cand{c, abs(tier-c.Depth) + 5})
			}
		}
	}

	var best *domain.TreeNode
	bestScore := affinity.Sentinel
	for _, c := range cands {
		if sc := s.classicScore(n, c.node, tier, c.tierDist); sc > bestScore {
			best, bestScore = c.node, sc
		}
	}
	return best
}

func (s *school) classicScore(n, c *domain.TreeNode, tier, tierDist int) float64 {
	eff := s.matrix.Effect(n.FormID, c.FormID)
	score := -float64(max(0, tierDist-1)) * 5
	score += 40 * eff
	if n.Theme != "" && c.Theme != "" {
		switch {
		case n.Theme == c.Theme && eff > 0.5:
			score += 25
		case n.Theme == c.Theme:
			score += 15
		default:
			score -= 10
		}
	}
	score += 30 * (0.4*s.matrix.Text(n.FormID, c.FormID) + 0.6*s.matrix.Name(n.FormID, c.FormID))
	score -= 8 * float64(len(c.Children))
	switch c.Depth {
	case tier - 1:
		score += 10
	case tier - 2:
		score += 5
	}
	return score + s.jitter(2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
