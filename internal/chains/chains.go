// Package chains cleans up chain groupings returned by a language model:
// unknown and duplicate ids are dropped, uncovered ids are appended and
// near-duplicate chains from separate batches are merged.
package chains

import (
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// MergeOverlap is the share of words two chain names must have in common,
// relative to the shorter name, to be merged.
const MergeOverlap = 0.5

// Filter keeps chains that have a name and at least one id from validIDs.
// Each id is kept only in the first chain that claims it. Ids nobody
// claimed are appended to the last chain in validIDs order.
func Filter(in []domain.Chain, validIDs []string) []domain.Chain {
	valid := make(map[string]bool, len(validIDs))
	for _, id := range validIDs {
		valid[id] = true
	}
	seen := make(map[string]bool, len(validIDs))

	var out []domain.Chain
	for _, c := range in {
		if strings.TrimSpace(c.Name) == "" || len(c.SpellIDs) == 0 {
			continue
		}
		var ids []string
		for _, id := range c.SpellIDs {
			if valid[id] && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			out = append(out, domain.Chain{Name: c.Name, Narrative: c.Narrative, SpellIDs: ids})
		}
	}
	return Cover(out, validIDs)
}

// Cover appends every id in validIDs that no chain contains to the last
// chain. It is a no-op on an empty list.
func Cover(in []domain.Chain, validIDs []string) []domain.Chain {
	if len(in) == 0 {
		return in
	}
	covered := make(map[string]bool)
	for _, c := range in {
		for _, id := range c.SpellIDs {
			covered[id] = true
		}
	}
	last := &in[len(in)-1]
	for _, id := range validIDs {
		if !covered[id] {
			covered[id] = true
			last.SpellIDs = append(last.SpellIDs, id)
		}
	}
	return in
}

// MergeSimilar folds each chain into the first earlier chain whose name
// shares at least MergeOverlap of its words. An empty narrative is filled
// from the merged chain.
func MergeSimilar(in []domain.Chain) []domain.Chain {
	if len(in) <= 1 {
		return in
	}
	used := make([]bool, len(in))
	var out []domain.Chain
	for i := range in {
		if used[i] {
			continue
		}
		used[i] = true
		merged := domain.Chain{
			Name:      in[i].Name,
			Narrative: in[i].Narrative,
			SpellIDs:  append([]string{}, in[i].SpellIDs...),
		}
		wordsA := nameWords(in[i].Name)
		for j := i + 1; j < len(in); j++ {
			if used[j] {
				continue
			}
			if !similarNames(wordsA, nameWords(in[j].Name)) {
				continue
			}
			used[j] = true
			merged.SpellIDs = append(merged.SpellIDs, in[j].SpellIDs...)
			if merged.Narrative == "" {
				merged.Narrative = in[j].Narrative
			}
		}
		out = append(out, merged)
	}
	return out
}

func nameWords(name string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(name)) {
		words[w] = true
	}
	return words
}

func similarNames(a, b map[string]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	overlap := 0
	for w := range a {
		if b[w] {
			overlap++
		}
	}
	return float64(overlap)/float64(min(len(a), len(b))) >= MergeOverlap
}
