package builder

import (
	"unicode"
	"unicode/utf8"

	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/themes"
)

// generalLane holds every item when a category has no themes.
const generalLane = "General"

type lane struct {
	theme string
	items []domain.Item
}

// laneGroups splits items into one lane per non-empty theme, in theme
// order, and returns the items no theme claimed.
func laneGroups(items []domain.Item, themeList []string) ([]lane, []domain.Item) {
	if len(themeList) == 0 {
		return []lane{{theme: generalLane, items: items}}, nil
	}
	g := themes.GroupSpellsBestFit(items, themeList, themes.DefaultMinScore)
	var lanes []lane
	for _, th := range themeList {
		if th == domain.UnassignedTheme || len(g[th]) == 0 {
			continue
		}
		lanes = append(lanes, lane{theme: th, items: g[th]})
	}
	return lanes, g[domain.UnassignedTheme]
}

func laneName(theme string) string {
	r, size := utf8.DecodeRuneInString(theme)
	if r == utf8.RuneError {
		return theme
	}
	return string(unicode.ToUpper(r)) + theme[size:]
}

// clusterLane lays each theme out as a sequential lane sorted by tier and
// cost. Lane heads go to the root while it has room, otherwise to the
// least-loaded placed node. A lane whose tail is full continues from the
// least-loaded node that is at most two over capacity.
func (s *school) clusterLane() *domain.SchoolTree {
	lanes, unassigned := laneGroups(s.items, s.themes)
	root := s.rootNode()
	var meta []domain.Chain

	for _, l := range lanes {
		ids := sortedIDs(l.items)
		for _, id := range ids {
			s.node(id).Theme = l.theme
			s.node(id).Chain = l.theme
		}

		head := s.node(ids[0])
		if head != root && !s.connected[head.FormID] {
			parent := root
			if !s.hasCapacity(root) {
				if p := s.leastLoaded(s.maxChildren); p != nil {
					parent = p
				}
			}
			s.link(parent, head)
		}

		prev := head
		for _, id := range ids[1:] {
			if s.connected[id] {
				continue
			}
			n := s.node(id)
			parent := prev
			if !s.hasCapacity(prev) {
				parent = s.leastLoaded(s.maxChildren + 2)
			}
			if parent == nil {
				continue
			}
			s.link(parent, n)
			prev = n
		}

		meta = append(meta, domain.Chain{
			Name:      laneName(l.theme),
			Narrative: l.theme + " progression lane",
			SpellIDs:  ids,
		})
	}

	for _, it := range unassigned {
		if s.connected[it.FormID] {
			continue
		}
		n := s.node(it.FormID)
		n.Theme = domain.UnassignedTheme
		if p := s.leastLoaded(s.maxChildren); p != nil {
			s.link(p, n)
		}
	}

	s.forceConnect(affinity.ForceConnectWeights(), nil, false)

	return &domain.SchoolTree{
		LayoutStyle: "oracle_cluster_lane",
		Color:       domain.SchoolColor(s.name, domain.DefaultSchoolColor),
		Chains:      meta,
		ConfigUsed:  s.configUsed("cluster_lanes", "oracle_fallback", nil),
	}
}

// leastLoaded returns the placed node with the fewest children below
// limit. Earlier nodes win ties.
func (s *school) leastLoaded(limit int) *domain.TreeNode {
	var best *domain.TreeNode
	for _, c := range s.connectedNodes() {
		if len(c.Children) >= limit {
			continue
		}
		if best == nil || len(c.Children) < len(best.Children) {
			best = c
		}
	}
	return best
}
