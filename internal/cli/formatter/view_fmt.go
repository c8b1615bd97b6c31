package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// FormatTreeView renders every category of a tree, or only school when it
// is non-empty. Callers check that school exists.
func FormatTreeView(tree *domain.TreeData, school string) string {
	names := domain.SortedSchoolNames(tree.Schools)
	if school != "" {
		names = []string{school}
	}

	var b strings.Builder
	for i, name := range names {
		st, ok := tree.Schools[name]
		if !ok {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatSchool(name, st))
	}
	return b.String()
}

// FormatSchool renders one category: a title line, the node tree and any
// chains or theme branches the strategy recorded.
func FormatSchool(name string, st *domain.SchoolTree) string {
	var b strings.Builder
	depth, widest := st.Shape()
	fmt.Fprintf(&b, "%s  %s\n",
		SchoolStyle(name, st.Color).Render(strings.ToUpper(name)),
		Dim(fmt.Sprintf("%s · %d nodes · depth %d · widest %d", st.LayoutStyle, len(st.Nodes), depth, widest)),
	)
	b.WriteString(RenderTree(SchoolTreeItems(st)))

	if len(st.Chains) > 0 {
		b.WriteString("\n" + Bold("Chains") + "\n")
		for _, c := range st.Chains {
			fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render(c.Name), Dim(fmt.Sprintf("(%d)", len(c.SpellIDs))))
			if c.Narrative != "" {
				b.WriteString("    " + Dim(c.Narrative) + "\n")
			}
		}
	}
	if len(st.Branches) > 0 {
		b.WriteString("\n" + Bold("Branches") + "\n")
		for _, br := range st.Branches {
			fmt.Fprintf(&b, "  %s %s\n",
				ThemeStyle(br.Color).Render(br.Theme),
				Dim(fmt.Sprintf("at %s (%d)", br.AttachmentPoint, len(br.SpellIDs))),
			)
		}
	}
	return b.String()
}
