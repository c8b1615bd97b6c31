package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SchoolStyle returns a bold style in the category's palette color. Hex
// colors carried on the tree win over the built-in palette.
func SchoolStyle(school, hex string) lipgloss.Style {
	if hex == "" {
		hex = domain.SchoolColor(school, domain.DefaultSchoolColor)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

// ThemeStyle colors a theme label with the color derived for it.
func ThemeStyle(hex string) lipgloss.Style {
	if hex == "" {
		return StyleDim
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// ValidityIndicator returns "● VALID", "● INVALID" or, when a capped repair
// loop gave up, "▲ INCOMPLETE".
func ValidityIndicator(valid, repairIncomplete bool) string {
	switch {
	case repairIncomplete:
		return StyleYellow.Render("▲ INCOMPLETE")
	case valid:
		return StyleGreen.Render("● VALID")
	default:
		return StyleRed.Render("● INVALID")
	}
}

// LLMModeBadge labels how an oracle tree was grouped.
func LLMModeBadge(mode string) string {
	switch mode {
	case "":
		return ""
	case "llm":
		return StylePurple.Render("llm")
	case "mixed":
		return StyleYellow.Render("mixed")
	default:
		return StyleDim.Render(mode)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
