package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Node statuses understood by RenderTree.
const (
	StatusRoot   = "root"
	StatusLink   = "link"
	StatusOrphan = "orphan"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title string
	Level int
	// Open[i] is true when the ancestor at depth i+1 still has siblings
	// below it, so a vertical guide continues through this line.
	Open   []bool
	IsLast bool
	Status string
	Detail string
	Color  string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing connectors, with detail badges right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				if i-1 < len(item.Open) && !item.Open[i-1] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		switch item.Status {
		case StatusRoot:
			title = StyleYellowBold.Render("★ " + title)
		case StatusLink:
			title = Dim("↳ " + title)
		case StatusOrphan:
			title = StyleRed.Render("✖ " + title)
		default:
			if item.Color != "" {
				title = ThemeStyle(item.Color).Render(title)
			}
		}

		content := StyleDim.Render(prefix.String()) + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}

// SchoolTreeItems flattens a category into display order: a depth-first
// walk of children edges from the root. A node with several parents is
// drawn under the first one and listed as a link under the others.
// Nodes the walk never reaches follow at level 0 as orphans.
func SchoolTreeItems(st *domain.SchoolTree) []TreeItem {
	byID := make(map[string]domain.NodeDict, len(st.Nodes))
	for _, n := range st.Nodes {
		byID[n.FormID] = n
	}

	var items []TreeItem
	seen := make(map[string]bool, len(st.Nodes))

	var walk func(id string, level int, open []bool, last bool)
	walk = func(id string, level int, open []bool, last bool) {
		n, ok := byID[id]
		if !ok {
			return
		}
		item := TreeItem{
			Title:  nodeTitle(n),
			Level:  level,
			Open:   open,
			IsLast: last,
			Detail: n.SkillLevel,
			Color:  n.ThemeColor,
		}
		if seen[id] {
			item.Status = StatusLink
			item.Detail = ""
			items = append(items, item)
			return
		}
		seen[id] = true
		if level == 0 {
			item.Status = StatusRoot
		}
		items = append(items, item)

		childOpen := open
		if level > 0 {
			childOpen = append(append([]bool(nil), open...), !last)
		}
		for i, c := range n.Children {
			walk(c, level+1, childOpen, i == len(n.Children)-1)
		}
	}
	walk(st.Root, 0, nil, true)

	for _, n := range st.Nodes {
		if seen[n.FormID] {
			continue
		}
		items = append(items, TreeItem{
			Title:  nodeTitle(n),
			Status: StatusOrphan,
			Detail: n.SkillLevel,
		})
	}
	return items
}

func nodeTitle(n domain.NodeDict) string {
	name := n.Name
	if name == "" {
		name = n.FormID
	}
	if n.Chain != "" {
		return fmt.Sprintf("%s %s", name, Dim("("+n.Chain+")"))
	}
	return name
}
