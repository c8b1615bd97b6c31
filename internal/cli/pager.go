package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel scrolls a pre-rendered tree. Header and footer take two lines
// each; the viewport gets the rest.
type pagerModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
	keys    pagerKeys
}

type pagerKeys struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

const pagerChrome = 4

func newPagerModel(title, content string) pagerModel {
	return pagerModel{
		title:   title,
		content: content,
		keys: pagerKeys{
			Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
			Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
			Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		},
	}
}

// pagerViewportKeyMap keeps arrows, pages and vim-style j/k for scrolling.
func pagerViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m pagerModel) Init() tea.Cmd { return nil }

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-pagerChrome, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.KeyMap = pagerViewportKeyMap()
			m.vp.MouseWheelEnabled = true
			m.vp.MouseWheelDelta = 3
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	width := max(m.vp.Width, 20)
	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", width))

	header := formatter.StyleHeader.Render(m.title)
	footer := strings.Join([]string{
		scrollIndicator(m.vp),
		formatter.Dim("↑/↓ j/k: scroll"),
		formatter.Dim("g/G: top/bottom"),
		formatter.Dim("q: quit"),
	}, "  ")
	return header + "\n" + sep + "\n" + m.vp.View() + "\n" + sep + "\n" + footer
}

// scrollIndicator returns a dim scroll position for the footer.
func scrollIndicator(vp viewport.Model) string {
	switch {
	case vp.AtTop() && vp.AtBottom():
		return formatter.Dim("[ALL]")
	case vp.AtTop():
		return formatter.Dim("[TOP]")
	case vp.AtBottom():
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
