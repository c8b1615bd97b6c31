package domain

// SchoolColors is the display palette for the five vanilla schools.
var SchoolColors = map[string]string{
	"Destruction": "#ef4444",
	"Conjuration": "#a855f7",
	"Alteration":  "#22c55e",
	"Illusion":    "#3b82f6",
	"Restoration": "#eab308",
}

const (
	DefaultSchoolColor  = "#888888"
	ThematicSchoolColor = "#94a3b8"
	OtherThemeColor     = "#6b7280"
	UnassignedTheme     = "_unassigned"
	OtherTheme          = "other"
)

// SchoolColor returns the palette color for school, or fallback.
func SchoolColor(school, fallback string) string {
	if c, ok := SchoolColors[school]; ok {
		return c
	}
	return fallback
}
