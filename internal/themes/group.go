package themes

import "github.com/alexanderramin/spelltree/internal/domain"

// Groups maps theme name to its items in input order. The UnassignedTheme
// bucket is always present.
type Groups map[string][]domain.Item

// GroupSpellsBestFit puts each item into its best theme when the score
// reaches minScore. Items that miss every theme are rescued through their
// llm_keyword or llm_keyword_parent tag when that theme exists.
func GroupSpellsBestFit(items []domain.Item, themes []string, minScore int) Groups {
	g := make(Groups, len(themes)+1)
	for _, th := range themes {
		g[th] = nil
	}
	g[domain.UnassignedTheme] = nil

	for _, it := range items {
		best, score := PrimaryTheme(it, themes)
		if best != domain.UnassignedTheme && score >= minScore {
			g[best] = append(g[best], it)
			continue
		}
		th := rescue(g, it)
		g[th] = append(g[th], it)
	}
	return g
}

func rescue(g Groups, it domain.Item) string {
	for _, kw := range []string{it.LLMKeyword, it.LLMKeywordParent} {
		if kw == "" || kw == domain.UnassignedTheme {
			continue
		}
		if _, ok := g[kw]; ok {
			return kw
		}
	}
	return domain.UnassignedTheme
}
