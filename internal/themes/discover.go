// Package themes discovers per-category keyword themes, scores items
// against them and groups items by best-fitting theme.
package themes

import (
	"sort"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
	"github.com/alexanderramin/spelltree/internal/textmodel"
)

// DiscoverThemesPerSchool ranks each category's terms by aggregate TF-IDF
// weight across its items and keeps the topN. Categories with fewer than
// two items are skipped.
func DiscoverThemesPerSchool(bySchool map[string][]domain.Item, topN int) map[string][]string {
	out := make(map[string][]string, len(bySchool))
	for school, items := range bySchool {
		if len(items) < 2 {
			continue
		}
		docs := make([][]string, len(items))
		for i, it := range items {
			docs[i] = textmodel.TokenizeFiltered(textmodel.BuildThemeText(it))
		}
		out[school] = topTerms(similarity.ComputeTfIdf(docs), topN)
	}
	return out
}

func topTerms(vecs []similarity.Vector, topN int) []string {
	totals := make(map[string]float64)
	var terms []string
	for _, v := range vecs {
		for _, t := range v.Terms {
			if _, ok := totals[t]; !ok {
				terms = append(terms, t)
			}
			totals[t] += v.Weights[t]
		}
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})

	out := make([]string, 0, topN)
	for _, t := range terms {
		if len(out) >= topN {
			break
		}
		if len(t) <= 2 || textmodel.IsStopWord(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
