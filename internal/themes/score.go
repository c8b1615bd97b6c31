package themes

import (
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/alexanderramin/spelltree/internal/similarity"
	"github.com/alexanderramin/spelltree/internal/textmodel"
)

// DefaultMinScore is the lowest score at which an item joins a theme.
const DefaultMinScore = 30

// CalculateThemeScore rates how well it fits theme on a 0..100 scale.
func CalculateThemeScore(it domain.Item, theme string) int {
	text := strings.ToLower(textmodel.BuildThemeText(it))
	name := strings.ToLower(it.Name)
	theme = strings.ToLower(theme)
	if theme == "" {
		return 0
	}

	var total float64
	switch {
	case strings.Contains(name, theme):
		total += 40
	case strings.Contains(text, theme):
		total += 30
	}
	total += float64(similarity.FuzzyPartialRatio(theme, text)) * 0.25
	total += float64(similarity.FuzzyTokenSetRatio(theme, text)) * 0.25
	total += float64(similarity.FuzzyPartialRatio(theme, name)) * 1.2 * 0.3

	return min(100, int(total))
}

// PrimaryTheme returns the best-scoring theme for it. Earlier themes win
// ties. When nothing scores above zero the result is UnassignedTheme.
func PrimaryTheme(it domain.Item, themes []string) (string, int) {
	best, bestScore := domain.UnassignedTheme, 0
	for _, th := range themes {
		if s := CalculateThemeScore(it, th); s > bestScore {
			best, bestScore = th, s
		}
	}
	return best, bestScore
}

// AssignedTheme is PrimaryTheme thresholded at minScore: items below the
// bar get fallback instead.
func AssignedTheme(it domain.Item, themes []string, minScore int, fallback string) string {
	th, score := PrimaryTheme(it, themes)
	if score > minScore {
		return th
	}
	return fallback
}
