package validate

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
)

// Tree is one category handed to ValidateAndFix.
type Tree struct {
	School      string
	Root        string
	Nodes       *domain.NodeSet
	Matrix      *similarity.Matrix
	MaxChildren int

	// RepairIncomplete is set by builders whose own capped passes stopped
	// before a fixed point.
	RepairIncomplete bool
}

// ValidateSchoolTree reports reachability, cycles and overloaded nodes.
// A node is only flagged when it exceeds maxChildren by more than two.
func ValidateSchoolTree(nodes *domain.NodeSet, root string, maxChildren int) domain.SchoolValidation {
	res := domain.SchoolValidation{Root: root, TotalNodes: nodes.Len()}
	if !nodes.Has(root) {
		res.Warnings = append(res.Warnings, "Root node not found: "+root)
		res.Unreachable = append([]string{}, nodes.IDs()...)
		return res
	}

	unlocked := SimulateUnlocks(nodes, root)
	res.ReachableNodes = len(unlocked)
	for _, id := range nodes.IDs() {
		if !unlocked[id] {
			res.Unreachable = append(res.Unreachable, id)
		}
	}
	res.Cycles = len(DetectCycles(nodes))

	for _, id := range nodes.IDs() {
		n := nodes.Get(id)
		if len(n.Children) > maxChildren+2 {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("Node %s has %d children (max %d)", id, len(n.Children), maxChildren))
		}
	}

	res.Valid = len(res.Unreachable) == 0 && res.Cycles == 0
	return res
}

// ValidateAndFix optionally repairs every tree and then reports the global
// summary. The summary is computed whether or not repair ran.
func ValidateAndFix(trees []*Tree, autoFix bool) domain.ValidationSummary {
	sort.SliceStable(trees, func(i, j int) bool { return trees[i].School < trees[j].School })

	sum := domain.ValidationSummary{AllValid: true, Schools: make(map[string]domain.SchoolValidation, len(trees))}
	for _, t := range trees {
		incomplete := t.RepairIncomplete
		if autoFix {
			if _, complete := FixUnreachableNodes(t.Nodes, t.Root, t.MaxChildren, t.Matrix); !complete {
				incomplete = true
			}
		}

		v := ValidateSchoolTree(t.Nodes, t.Root, t.MaxChildren)
		v.RepairIncomplete = incomplete
		sum.Schools[t.School] = v
		sum.TotalNodes += v.TotalNodes
		sum.ReachableNodes += v.ReachableNodes
		if v.ReachableNodes != v.TotalNodes {
			sum.AllValid = false
		}
		if incomplete {
			sum.RepairIncomplete = true
		}
	}
	return sum
}

// NodeSetFromDicts rebuilds a node set from serialized nodes. Edges listed
// on either side are restored on both.
func NodeSetFromDicts(dicts []domain.NodeDict) *domain.NodeSet {
	set := domain.NewNodeSet()
	for _, d := range dicts {
		set.Add(&domain.TreeNode{
			FormID:     d.FormID,
			Name:       d.Name,
			SkillLevel: d.SkillLevel,
			Tier:       domain.TierOf(d.SkillLevel),
			Theme:      d.Theme,
			Section:    d.Section,
			Chain:      d.Chain,
			ThemeColor: d.ThemeColor,
			Depth:      max(0, d.Tier-1),
		})
	}
	for _, d := range dicts {
		for _, c := range d.Children {
			set.LinkGate(d.FormID, c)
		}
		for _, p := range d.Prerequisites {
			if set.Has(p) {
				set.LinkGate(p, d.FormID)
				continue
			}
			// dangling prerequisites keep the node locked
			n := set.Get(d.FormID)
			n.Prerequisites = append(n.Prerequisites, p)
		}
	}
	return set
}
