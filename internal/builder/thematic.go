package builder

import (
	"context"
	"slices"

	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/themes"
)

const allTheme = "_all"

// buildThematic grows one breadth-first branch per theme. The largest
// theme is the trunk hanging off the root; every other theme attaches at
// the placed node it resembles most. Items that fit no theme are swept in
// afterwards under the "other" theme.
func buildThematic(_ context.Context, s *school) *domain.SchoolTree {
	if !s.init() {
		return nil
	}

	grouped := themes.GroupSpellsBestFit(s.items, s.themes, themes.DefaultMinScore)
	order := rankThemes(grouped, s.themes)
	var orphans []domain.Item
	if len(order) == 0 {
		grouped = themes.Groups{allTheme: s.items}
		order = []string{allTheme}
	} else {
		orphans = grouped[domain.UnassignedTheme]
	}

	for _, th := range order {
		for _, it := range grouped[th] {
			s.node(it.FormID).Theme = th
		}
	}
	for _, it := range orphans {
		s.node(it.FormID).Theme = domain.OtherTheme
	}
	trunk := order[0]
	s.rootNode().Theme = trunk

	var branches []domain.Branch
	inBranch := map[string]bool{s.root: true}

	trunkItems := slices.Clone(grouped[trunk])
	sortByTierAndCost(trunkItems)
	trunkBranch := domain.Branch{Theme: trunk, AttachmentPoint: s.root, SpellIDs: []string{s.root}}
	trunkBranch.SpellIDs = append(trunkBranch.SpellIDs, s.growBranch(trunkItems, s.rootNode())...)
	branches = append(branches, trunkBranch)

	for _, th := range order[1:] {
		items := slices.Clone(grouped[th])
		sortByTierAndCost(items)
		var first *domain.TreeNode
		for _, it := range items {
			if !s.connected[it.FormID] {
				first = s.node(it.FormID)
				break
			}
		}
		if first == nil {
			continue
		}
		attach := s.attachmentPoint(first)
		ids := s.growBranch(items, attach)
		if len(ids) == 0 {
			continue
		}
		branches = append(branches, domain.Branch{Theme: th, AttachmentPoint: attach.FormID, SpellIDs: ids})
	}
	for _, b := range branches {
		for _, id := range b.SpellIDs {
			inBranch[id] = true
		}
	}

	s.forceConnect(affinity.SweepWeights(), nil, true)

	var rest []string
	for _, id := range s.nodes.IDs() {
		if s.connected[id] && !inBranch[id] {
			rest = append(rest, id)
		}
	}
	if len(rest) > 0 {
		branches = append(branches, domain.Branch{Theme: domain.OtherTheme, AttachmentPoint: s.root, SpellIDs: rest})
	}

	color := domain.SchoolColor(s.name, domain.ThematicSchoolColor)
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Theme)
	}
	palette := themes.DeriveThemeColors(color, names)
	for i := range branches {
		branches[i].Color = palette[branches[i].Theme]
	}
	for _, id := range s.nodes.IDs() {
		n := s.node(id)
		if c, ok := palette[n.Theme]; ok {
			n.ThemeColor = c
		}
	}

	return &domain.SchoolTree{
		LayoutStyle: "thematic_bfs",
		Color:       color,
		Branches:    branches,
		ConfigUsed: s.configUsed("thematic_bfs", "thematic", map[string]any{
			"chaos":        s.cfg.Chaos,
			"branch_style": s.cfg.BranchStyle,
		}),
	}
}

// growBranch links items breadth-first below attach: each new node joins
// the parent queue and parents leave it once full. When the queue runs dry
// the nearest node with room around attach takes over. It returns the ids
// placed.
func (s *school) growBranch(items []domain.Item, attach *domain.TreeNode) []string {
	var queue []*domain.TreeNode
	if s.hasCapacity(attach) {
		queue = append(queue, attach)
	}
	var placed []string
	for _, it := range items {
		if s.connected[it.FormID] {
			continue
		}
		for len(queue) > 0 && !s.hasCapacity(queue[0]) {
			queue = queue[1:]
		}
		if len(queue) == 0 {
			p := s.parentWithCapacity(attach)
			if p == nil {
				continue
			}
			queue = append(queue, p)
		}
		n := s.node(it.FormID)
		s.link(queue[0], n)
		queue = append(queue, n)
		placed = append(placed, n.FormID)
	}
	return placed
}

// parentWithCapacity searches outward from start over both edge
// directions for the closest connected node with room.
func (s *school) parentWithCapacity(start *domain.TreeNode) *domain.TreeNode {
	seen := map[string]bool{start.FormID: true}
	queue := []*domain.TreeNode{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if s.connected[cur.FormID] && s.hasCapacity(cur) {
			return cur
		}
		for _, id := range append(slices.Clone(cur.Prerequisites), cur.Children...) {
			if !seen[id] {
				seen[id] = true
				if n := s.node(id); n != nil {
					queue = append(queue, n)
				}
			}
		}
	}
	return nil
}

// attachmentPoint picks where a new theme branch starts. Chaos widens the
// random term so branches scatter across the tree.
func (s *school) attachmentPoint(first *domain.TreeNode) *domain.TreeNode {
	var best *domain.TreeNode
	bestScore := affinity.Sentinel
	for _, c := range s.connectedNodes() {
		if !s.hasCapacity(c) {
			continue
		}
		tier := domain.TierIndex(c.SkillLevel)
		if tier < 0 {
			tier = 2
		}
		score := 35*s.matrix.Effect(first.FormID, c.FormID) +
			25*s.matrix.Text(first.FormID, c.FormID) +
			20*s.matrix.Name(first.FormID, c.FormID) -
			5*float64(tier) -
			8*float64(len(c.Children))
		if s.cfg.Chaos > 0 {
			score += s.cfg.Chaos * s.jitter(20)
		}
		score += s.jitter(1)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if best == nil {
		return s.rootNode()
	}
	return best
}
