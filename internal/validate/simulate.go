// Package validate checks built trees for reachability and cycles and
// repairs nodes that cannot be unlocked from the root.
package validate

import "github.com/alexanderramin/spelltree/internal/domain"

// SimulateUnlocks walks children edges breadth-first from root. A node is
// unlocked once every one of its prerequisites is unlocked. The returned
// set includes root; it is empty when root is missing.
func SimulateUnlocks(nodes *domain.NodeSet, root string) map[string]bool {
	unlocked := make(map[string]bool)
	if !nodes.Has(root) {
		return unlocked
	}
	unlocked[root] = true
	queue := []string{root}
	for len(queue) > 0 {
		cur := nodes.Get(queue[0])
		queue = queue[1:]
		for _, cid := range cur.Children {
			if unlocked[cid] {
				continue
			}
			child := nodes.Get(cid)
			if child == nil || !allUnlocked(child.Prerequisites, unlocked) {
				continue
			}
			unlocked[cid] = true
			queue = append(queue, cid)
		}
	}
	return unlocked
}

func allUnlocked(ids []string, unlocked map[string]bool) bool {
	for _, id := range ids {
		if !unlocked[id] {
			return false
		}
	}
	return true
}

// Unreachable returns the ids SimulateUnlocks cannot reach, in node order.
func Unreachable(nodes *domain.NodeSet, root string) []string {
	unlocked := SimulateUnlocks(nodes, root)
	var out []string
	for _, id := range nodes.IDs() {
		if !unlocked[id] {
			out = append(out, id)
		}
	}
	return out
}

// DetectCycles returns every cycle found by a depth-first walk over
// children edges. Each path starts and ends with the same id.
func DetectCycles(nodes *domain.NodeSet) [][]string {
	var (
		cycles  [][]string
		visited = make(map[string]bool)
		inStack = make(map[string]bool)
		stack   []string
	)

	var dfs func(id string)
	dfs = func(id string) {
		if inStack[id] {
			for i, s := range stack {
				if s == id {
					cycle := append(append([]string{}, stack[i:]...), id)
					cycles = append(cycles, cycle)
					break
				}
			}
			return
		}
		if visited[id] {
			return
		}
		visited[id] = true
		inStack[id] = true
		stack = append(stack, id)
		if n := nodes.Get(id); n != nil {
			for _, c := range n.Children {
				dfs(c)
			}
		}
		stack = stack[:len(stack)-1]
		inStack[id] = false
	}

	for _, id := range nodes.IDs() {
		if !visited[id] {
			dfs(id)
		}
	}
	return cycles
}
