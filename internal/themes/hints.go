package themes

import "strings"

// HintMargin is how many themes beyond topThemesPerSchool a category may
// carry once hints are merged in.
const HintMargin = 4

// VanillaHints are curated themes per vanilla school.
var VanillaHints = map[string][]string{
	"Destruction": {"fire", "frost", "shock", "cloak", "rune", "wall", "bolt", "storm"},
	"Conjuration": {"conjure", "summon", "bound", "atronach", "zombie", "raise", "reanimate", "dremora"},
	"Alteration":  {"flesh", "armor", "paralyze", "detect", "light", "transmute", "waterbreathing", "telekinesis"},
	"Illusion":    {"fury", "fear", "calm", "courage", "invisibility", "muffle", "frenzy", "pacify"},
	"Restoration": {"heal", "healing", "ward", "turn", "undead", "cure", "bane", "circle"},
}

// MergeWithHints puts each category's hints first, appends discovered terms
// not already present (case-insensitively) and caps the list at maxThemes.
// Categories that only have hints get the hint list.
func MergeWithHints(discovered, hints map[string][]string, maxThemes int) map[string][]string {
	out := make(map[string][]string, len(discovered))
	for school, terms := range discovered {
		h, ok := hints[school]
		if !ok {
			out[school] = truncate(append([]string{}, terms...), maxThemes)
			continue
		}
		merged := append([]string{}, h...)
		seen := make(map[string]bool, len(h))
		for _, t := range h {
			seen[strings.ToLower(t)] = true
		}
		for _, t := range terms {
			if !seen[strings.ToLower(t)] {
				seen[strings.ToLower(t)] = true
				merged = append(merged, t)
			}
		}
		out[school] = truncate(merged, maxThemes)
	}
	for school, h := range hints {
		if _, ok := out[school]; !ok {
			out[school] = append([]string{}, h...)
		}
	}
	return out
}

func truncate(s []string, n int) []string {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}
