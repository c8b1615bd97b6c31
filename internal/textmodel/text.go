package textmodel

import (
	"strings"
	"unicode"

	"github.com/alexanderramin/spelltree/internal/domain"
)

// BuildItemText is the TF-IDF document for an item. The name appears
// twice to boost its term frequency.
func BuildItemText(it domain.Item) string {
	parts := []string{it.Name, it.Name, it.Description}
	for _, e := range it.Effects {
		parts = append(parts, e.Name)
	}
	return joinNonEmpty(parts)
}

// BuildThemeText is the richer document used for theme discovery and
// theme scoring.
func BuildThemeText(it domain.Item) string {
	parts := []string{it.Name, it.Name, it.Name}
	for _, n := range it.EffectNames {
		parts = append(parts, n, n, n)
	}
	for _, e := range it.Effects {
		parts = append(parts, e.Name, e.Description)
	}
	for _, kw := range it.Keywords {
		parts = append(parts, SplitKeyword(kw))
	}
	return joinNonEmpty(parts)
}

// SplitKeyword turns "MagicDamageFire" into "Damage Fire".
func SplitKeyword(kw string) string {
	if strings.HasPrefix(kw, "Magic") && len(kw) > 5 {
		kw = kw[5:]
	}
	var b strings.Builder
	for i, r := range kw {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func joinNonEmpty(parts []string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
