package builder

import (
	"context"
	"slices"
	"sort"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/themes"
	"github.com/alexanderramin/spelltree/internal/validate"
)

// convergenceNeeds is the prerequisite count wanted per tier; Expert and
// Master items become gates.
var convergenceNeeds = [...]int{0, 0, 0, 2, 3}

// buildTree interleaves the theme groups round-robin, largest group first,
// so every theme grows a little per round. Items are placed under nodes at
// most two levels above their tier. Expert and Master items may then gain
// extra prerequisites with probability convergence_chance.
func buildTree(_ context.Context, s *school) *domain.SchoolTree {
	if !s.init() {
		return nil
	}
	s.assignPrimaryThemes(domain.UnassignedTheme)

	grouped := themes.GroupSpellsBestFit(s.items, s.themes, themes.DefaultMinScore)
	order := rankThemes(grouped, s.themes)

	queues := make(map[string][]domain.Item, len(order))
	rounds := 0
	for _, th := range order {
		q := slices.Clone(grouped[th])
		slices.SortStableFunc(q, func(a, b domain.Item) int {
			return domain.TierRank(a.SkillLevel) - domain.TierRank(b.SkillLevel)
		})
		queues[th] = q
		rounds = max(rounds, len(q))
	}

	available := map[int][]*domain.TreeNode{0: {s.rootNode()}}
	themeTail := make(map[string]*domain.TreeNode, len(order))

	for round := 0; round < rounds; round++ {
		for _, th := range order {
			q := queues[th]
			if round >= len(q) {
				continue
			}
			n := s.node(q[round].FormID)
			if s.connected[n.FormID] {
				themeTail[th] = n
				continue
			}
			parent := s.roundRobinParent(n, themeTail[th], available)
			if parent == nil {
				continue
			}
			s.link(parent, n)
			if s.hasCapacity(n) {
				available[n.Depth] = append(available[n.Depth], n)
			}
			themeTail[th] = n
		}
	}

	for _, it := range grouped[domain.UnassignedTheme] {
		n := s.node(it.FormID)
		if s.connected[n.FormID] {
			continue
		}
		if parent := s.unassignedParent(n, available); parent != nil {
			s.link(parent, n)
			if s.hasCapacity(n) {
				available[n.Depth] = append(available[n.Depth], n)
			}
		}
	}

	s.connectTreeOrphans()
	s.addConvergenceGates()
	if _, complete := validate.FixUnreachableNodes(s.nodes, s.root, s.maxChildren, s.matrix); !complete {
		s.repairIncomplete = true
	}
	AssignSections(s.nodes, s.root)

	return &domain.SchoolTree{
		LayoutStyle: "radial",
		Color:       domain.SchoolColor(s.name, domain.DefaultSchoolColor),
		ConfigUsed: s.configUsed("tree_nlp", "tree", map[string]any{
			"branch_style":       s.cfg.BranchStyle,
			"convergence_chance": s.cfg.ConvergenceChance,
		}),
	}
}

// rankThemes orders non-empty theme groups by size, largest first. Equal
// sizes keep the theme list order.
func rankThemes(g themes.Groups, themeOrder []string) []string {
	var out []string
	for _, th := range themeOrder {
		if th != domain.UnassignedTheme && len(g[th]) > 0 {
			out = append(out, th)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(g[out[i]]) > len(g[out[j]]) })
	return out
}

func sameAssignedTheme(a, b *domain.TreeNode) (same, comparable bool) {
	if a.Theme == "" || b.Theme == "" || a.Theme == domain.UnassignedTheme || b.Theme == domain.UnassignedTheme {
		return false, false
	}
	return a.Theme == b.Theme, true
}

// roundRobinParent scores open nodes up to two levels above n's tier.
// With the "chain" branch style the theme's latest node gets a bonus that
// grows with density, which stretches themes into chains instead of fans.
func (s *school) roundRobinParent(n, tail *domain.TreeNode, available map[int][]*domain.TreeNode) *domain.TreeNode {
	var best *domain.TreeNode
	bestScore := 0.0
	for d := max(0, n.Tier-2); d <= n.Tier; d++ {
		for _, c := range available[d] {
			if !s.hasCapacity(c) {
				continue
			}
			score := 0.0
			if same, ok := sameAssignedTheme(n, c); ok {
				if same {
					score += 170
				} else {
					score -= 50
				}
			}
			score += tierStepBonus(n.Tier-c.Depth, true)
			score += 60 * s.matrix.Text(n.FormID, c.FormID)
			score -= 30 * float64(len(c.Children)) / float64(s.maxChildren)
			if c == tail && s.cfg.BranchStyle == "chain" {
				score += 30 * s.cfg.Density
			}
			score += s.jitter(2)
			if best == nil || score > bestScore {
				best, bestScore = c, score
			}
		}
	}
	if best != nil {
		return best
	}
	for d := n.Tier - 1; d >= 0; d-- {
		for _, c := range available[d] {
			if len(c.Children) < s.maxChildren+2 {
				return c
			}
		}
	}
	return nil
}

func tierStepBonus(diff int, penalizeFar bool) float64 {
	switch {
	case diff == 1:
		return 50
	case diff == 2 && penalizeFar:
		return 30
	case diff > 2 && penalizeFar:
		return -20
	case diff == 0:
		return 10
	}
	return 0
}

func (s *school) unassignedParent(n *domain.TreeNode, available map[int][]*domain.TreeNode) *domain.TreeNode {
	var best *domain.TreeNode
	bestScore := 0.0
	for d := max(0, n.Tier-2); d <= n.Tier; d++ {
		for _, c := range available[d] {
			if !s.hasCapacity(c) {
				continue
			}
			score := tierStepBonus(n.Tier-c.Depth, false)
			score += 60 * s.matrix.Text(n.FormID, c.FormID)
			score -= 30 * float64(len(c.Children)) / float64(s.maxChildren)
			if best == nil || score > bestScore {
				best, bestScore = c, score
			}
		}
	}
	return best
}

// connectTreeOrphans places whatever the round-robin could not, preferring
// open nodes one level above the orphan's tier and falling back to the
// least loaded shallower node.
func (s *school) connectTreeOrphans() {
	for _, id := range s.unconnected() {
		n := s.node(id)
		var best *domain.TreeNode
		bestScore := 0.0
		for _, c := range s.connectedNodes() {
			if !s.hasCapacity(c) {
				continue
			}
			score := 0.0
			switch {
			case c.Depth < n.Tier:
				score += 50
				if c.Depth == n.Tier-1 {
					score += 30
				}
			case c.Depth == n.Tier:
				score += 10
			default:
				score -= 50
			}
			if n.Theme != "" && c.Theme == n.Theme {
				score += 40
			}
			score -= 15 * float64(len(c.Children))
			if best == nil || score > bestScore {
				best, bestScore = c, score
			}
		}
		if best == nil {
			for _, c := range s.connectedNodes() {
				if c.Depth < n.Tier && (best == nil || len(c.Children) < len(best.Children)) {
					best = c
				}
			}
		}
		if best != nil {
			s.link(best, n)
		}
	}
}

// addConvergenceGates gives Expert and Master items extra prerequisites
// from shallower reachable nodes that are not below them.
func (s *school) addConvergenceGates() {
	reachable := validate.SimulateUnlocks(s.nodes, s.root)
	for _, id := range s.nodes.IDs() {
		if id == s.root {
			continue
		}
		n := s.node(id)
		needed := convergenceNeeds[n.Tier] - len(n.Prerequisites)
		if needed <= 0 || s.rng.Float64() >= s.cfg.ConvergenceChance {
			continue
		}

		type scored struct {
			id    string
			score float64
		}
		var cands []scored
		for _, cid := range s.nodes.IDs() {
			c := s.node(cid)
			if cid == id || n.HasPrerequisite(cid) || !reachable[cid] || c.Depth >= n.Depth {
				continue
			}
			if s.nodes.IsDescendant(id, cid) {
				continue
			}
			score := 40 * s.matrix.Text(id, cid)
			score += max(0, 20-10*float64(abs(n.Depth-c.Depth)))
			if c.Theme != n.Theme {
				score += 10
			}
			cands = append(cands, scored{cid, score})
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
		for _, c := range cands[:min(needed, len(cands))] {
			s.nodes.LinkGate(c.id, id)
		}
	}
}

// AssignSections labels nodes root, trunk or branch by relative depth.
func AssignSections(nodes *domain.NodeSet, root string) {
	maxDepth := 0
	for _, id := range nodes.IDs() {
		maxDepth = max(maxDepth, nodes.Get(id).Depth)
	}
	rootCut := int(0.2 * float64(maxDepth))
	trunkCut := max(rootCut+1, int(0.7*float64(maxDepth)))
	for _, id := range nodes.IDs() {
		n := nodes.Get(id)
		switch {
		case maxDepth == 0 || id == root || n.Depth <= rootCut:
			n.Section = "root"
		case n.Depth <= trunkCut:
			n.Section = "trunk"
		default:
			n.Section = "branch"
		}
	}
}
