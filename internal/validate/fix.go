package validate

import (
	"github.com/alexanderramin/spelltree/internal/affinity"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
)

// MaxFixPasses bounds FixUnreachableNodes.
const MaxFixPasses = 20

// FixUnreachableNodes reconnects nodes that cannot be unlocked. Edges from
// locked prerequisites are removed first; a node left without any
// prerequisite is linked to the best reachable node under capacity, or to
// the root. It returns the number of repairs and whether the tree reached
// a fixed point within MaxFixPasses.
func FixUnreachableNodes(nodes *domain.NodeSet, root string, maxChildren int, m *similarity.Matrix) (int, bool) {
	if !nodes.Has(root) {
		return 0, false
	}
	fixes := 0
	for pass := 0; pass < MaxFixPasses; pass++ {
		unreachable := Unreachable(nodes, root)
		if len(unreachable) == 0 {
			return fixes, true
		}

		fixedAny := false
		for _, id := range unreachable {
			unlocked := SimulateUnlocks(nodes, root)
			n := nodes.Get(id)

			var blocking []string
			for _, p := range n.Prerequisites {
				if !unlocked[p] {
					blocking = append(blocking, p)
				}
			}
			if len(blocking) > 0 {
				for _, p := range blocking {
					nodes.Unlink(p, id)
				}
				fixes++
				fixedAny = true
				continue
			}
			if len(n.Prerequisites) > 0 {
				continue
			}

			parent := root
			if best := BestReachableParent(nodes, n, unlocked, maxChildren, m); best != nil {
				parent = best.FormID
			}
			if nodes.Link(parent, id) {
				fixes++
				fixedAny = true
			}
		}
		if !fixedAny {
			break
		}
	}
	return fixes, len(Unreachable(nodes, root)) == 0
}

// BestReachableParent picks the best unlocked node with spare capacity for
// n using the force-connect weights.
func BestReachableParent(nodes *domain.NodeSet, n *domain.TreeNode, unlocked map[string]bool, maxChildren int, m *similarity.Matrix) *domain.TreeNode {
	var cands []*domain.TreeNode
	for _, id := range nodes.IDs() {
		if unlocked[id] {
			cands = append(cands, nodes.Get(id))
		}
	}
	best, _ := affinity.Best(n, cands, m, affinity.ForceConnectWeights(), func(c *domain.TreeNode) bool {
		return len(c.Children) < maxChildren
	})
	return best
}
