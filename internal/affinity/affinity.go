// Package affinity scores a placed node as a parent for another node by
// tier distance, item similarity, shared theme and current load. Every
// "attach this node somewhere sensible" decision in the builders and the
// validator goes through Best.
package affinity

import (
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
)

// Sentinel is below any score a real candidate can reach.
const Sentinel = -1000.0

type Weights struct {
	Base      float64 // candidate at or below the node's tier
	TierStep  float64 // per tier between candidate and node
	Above     float64 // candidate above the node's tier
	Effect    float64
	Text      float64
	Name      float64
	SameTheme float64
	Load      float64 // per existing child
}

// ForceConnectWeights place leftovers by tier, theme and load only.
func ForceConnectWeights() Weights {
	return Weights{Base: 100, TierStep: 5, Above: -200, SameTheme: 25, Load: 10}
}

// OrphanWeights add effect similarity, used for tier-first orphans.
func OrphanWeights() Weights {
	return Weights{Base: 100, TierStep: 5, Above: -200, Effect: 30, SameTheme: 15, Load: 8}
}

// SweepWeights add text and name similarity, used for theme-first orphans.
func SweepWeights() Weights {
	return Weights{Base: 100, TierStep: 5, Above: -200, Effect: 30, Text: 15, Name: 10, SameTheme: 15, Load: 8}
}

// Score rates cand as a parent for n.
func Score(n, cand *domain.TreeNode, m *similarity.Matrix, w Weights) float64 {
	var s float64
	if cand.Tier <= n.Tier {
		s = w.Base - w.TierStep*float64(n.Tier-cand.Tier)
	} else {
		s = w.Above
	}
	if w.Effect != 0 {
		s += w.Effect * m.Effect(n.FormID, cand.FormID)
	}
	if w.Text != 0 {
		s += w.Text * m.Text(n.FormID, cand.FormID)
	}
	if w.Name != 0 {
		s += w.Name * m.Name(n.FormID, cand.FormID)
	}
	if n.Theme != "" && n.Theme == cand.Theme {
		s += w.SameTheme
	}
	s -= w.Load * float64(len(cand.Children))
	return s
}

// Best returns the highest-scoring candidate that passes accept, or nil.
// Earlier candidates win ties. A nil accept admits every candidate except
// n itself.
func Best(n *domain.TreeNode, candidates []*domain.TreeNode, m *similarity.Matrix, w Weights, accept func(*domain.TreeNode) bool) (*domain.TreeNode, float64) {
	var best *domain.TreeNode
	bestScore := Sentinel
	for _, c := range candidates {
		if c == nil || c.FormID == n.FormID {
			continue
		}
		if accept != nil && !accept(c) {
			continue
		}
		if s := Score(n, c, m, w); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, bestScore
}
