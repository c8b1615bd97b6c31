package themes

import (
	"math"
	"sort"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// DeriveThemeColors spreads the themes of one category around the hue
// wheel starting from the category base color. The "other" theme always
// gets a neutral gray.
func DeriveThemeColors(base string, themeNames []string) map[string]string {
	out := make(map[string]string, len(themeNames))
	c, err := colorful.Hex(base)
	if err != nil {
		c, _ = colorful.Hex(domain.DefaultSchoolColor)
	}
	h, s, l := c.Hsl()

	var sorted []string
	for _, th := range themeNames {
		if th != domain.OtherTheme {
			sorted = append(sorted, th)
		}
	}
	sort.Strings(sorted)

	n := len(sorted)
	for i, th := range sorted {
		hue := h
		if n > 1 {
			hue = math.Mod(h+360*float64(i)/float64(n), 360)
		}
		sat := clamp(s*(0.85+0.3*float64(i)/float64(max(n-1, 1))), 0.2, 1)
		lit := clamp(l, 0.25, 0.75)
		out[th] = colorful.Hsl(hue, sat, lit).Clamped().Hex()
	}
	out[domain.OtherTheme] = domain.OtherThemeColor
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
