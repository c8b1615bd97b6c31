package domain

import "sort"

// NodeDict is the serialized shape of one node.
type NodeDict struct {
	FormID        string   `json:"formId"`
	Children      []string `json:"children"`
	Prerequisites []string `json:"prerequisites"`
	Tier          int      `json:"tier"`
	Name          string   `json:"name,omitempty"`
	SkillLevel    string   `json:"skillLevel,omitempty"`
	Section       string   `json:"section,omitempty"`
	Theme         string   `json:"theme,omitempty"`
	Chain         string   `json:"chain,omitempty"`
	ThemeColor    string   `json:"themeColor,omitempty"`
}

// Chain is a named linear learning path produced by chain grouping.
type Chain struct {
	Name      string   `json:"name"`
	SpellIDs  []string `json:"spellIds"`
	Narrative string   `json:"narrative"`
}

// Branch describes one theme subtree of a thematic build.
type Branch struct {
	Theme           string   `json:"theme"`
	AttachmentPoint string   `json:"attachmentPoint"`
	SpellIDs        []string `json:"spellIds"`
	Color           string   `json:"color"`
}

// SchoolTree is the output for one category.
type SchoolTree struct {
	Root        string         `json:"root"`
	LayoutStyle string         `json:"layoutStyle"`
	Color       string         `json:"color,omitempty"`
	Nodes       []NodeDict     `json:"nodes"`
	Chains      []Chain        `json:"chains,omitempty"`
	Branches    []Branch       `json:"branches,omitempty"`
	ConfigUsed  map[string]any `json:"config_used"`
}

// SchoolValidation is the validator report for one category.
type SchoolValidation struct {
	Root             string   `json:"root"`
	Valid            bool     `json:"valid"`
	TotalNodes       int      `json:"total_nodes"`
	ReachableNodes   int      `json:"reachable_nodes"`
	Unreachable      []string `json:"unreachable,omitempty"`
	Cycles           int      `json:"cycles"`
	Warnings         []string `json:"warnings,omitempty"`
	RepairIncomplete bool     `json:"repair_incomplete,omitempty"`
}

// ValidationSummary is the global validation block of a build.
// RepairIncomplete is set when a capped repair loop stopped before
// reaching a fixed point; it is independent of AllValid.
type ValidationSummary struct {
	AllValid         bool                        `json:"all_valid"`
	TotalNodes       int                         `json:"total_nodes"`
	ReachableNodes   int                         `json:"reachable_nodes"`
	RepairIncomplete bool                        `json:"repair_incomplete"`
	Schools          map[string]SchoolValidation `json:"schools,omitempty"`
}

// TreeData is the full build output.
type TreeData struct {
	Version    string                 `json:"version"`
	Generator  string                 `json:"generator"`
	Command    string                 `json:"command"`
	Seed       int64                  `json:"seed"`
	LLMMode    string                 `json:"llm_mode,omitempty"`
	Schools    map[string]*SchoolTree `json:"schools"`
	Validation ValidationSummary      `json:"validation"`
}

// BuildResult wraps a build. Strategy-level failures are reported through
// Success and Error rather than a Go error.
type BuildResult struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Tree      *TreeData `json:"treeData,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms"`
}

// SortedSchoolNames returns the category names of a build in sorted order.
func SortedSchoolNames(schools map[string]*SchoolTree) []string {
	names := make([]string, 0, len(schools))
	for name := range schools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shape returns the deepest breadth-first level below the root and the
// largest child count of any node.
func (st *SchoolTree) Shape() (maxDepth, widest int) {
	children := make(map[string][]string, len(st.Nodes))
	for _, n := range st.Nodes {
		children[n.FormID] = n.Children
		widest = max(widest, len(n.Children))
	}
	if _, ok := children[st.Root]; !ok {
		return 0, widest
	}

	depth := map[string]int{st.Root: 0}
	queue := []string{st.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range children[id] {
			if _, seen := depth[c]; seen {
				continue
			}
			depth[c] = depth[id] + 1
			maxDepth = max(maxDepth, depth[c])
			queue = append(queue, c)
		}
	}
	return maxDepth, widest
}
