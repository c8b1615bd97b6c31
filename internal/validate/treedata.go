package validate

import (
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
)

// Revalidate re-runs validation over a serialized tree, such as one read
// back from disk. With autoFix the repaired node lists replace the
// originals. Node names stand in for the full item text when scoring
// repair candidates. tree.Validation is replaced and also returned.
func Revalidate(tree *domain.TreeData, autoFix bool, maxChildren int) domain.ValidationSummary {
	if maxChildren <= 0 {
		maxChildren = domain.DefaultBuildConfig().MaxChildrenPerNode
	}

	sets := make(map[string]*domain.NodeSet, len(tree.Schools))
	trees := make([]*Tree, 0, len(tree.Schools))
	for _, name := range domain.SortedSchoolNames(tree.Schools) {
		st := tree.Schools[name]
		set := NodeSetFromDicts(st.Nodes)
		sets[name] = set

		items := make([]domain.Item, 0, len(st.Nodes))
		for _, d := range st.Nodes {
			items = append(items, domain.Item{FormID: d.FormID, Name: d.Name, School: name, SkillLevel: d.SkillLevel})
		}
		trees = append(trees, &Tree{
			School:      name,
			Root:        st.Root,
			Nodes:       set,
			Matrix:      similarity.BuildMatrix(items),
			MaxChildren: maxChildren,
		})
	}

	sum := ValidateAndFix(trees, autoFix)
	if autoFix {
		for name, set := range sets {
			tree.Schools[name].Nodes = set.Dicts()
		}
	}
	tree.Validation = sum
	return sum
}
