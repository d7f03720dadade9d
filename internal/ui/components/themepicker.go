package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
)

// ThemeSelectedMsg is sent when a theme is selected
type ThemeSelectedMsg struct {
	ThemeName string
}

var (
	pickerCancel = key.NewBinding(key.WithKeys("esc", "q"))
	pickerUp     = key.NewBinding(key.WithKeys("up", "k"))
	pickerDown   = key.NewBinding(key.WithKeys("down", "j"))
	pickerSelect = key.NewBinding(key.WithKeys("enter"))
)

// ThemePicker is a modal component for selecting themes
type ThemePicker struct {
	styles          *styles.Styles
	visible         bool
	width           int
	height          int
	availableThemes []string
	currentTheme    string
	cursor          int
}

// NewThemePicker creates a picker over availableThemes with the cursor on currentTheme.
func NewThemePicker(appStyles *styles.Styles, availableThemes []string, currentTheme string) ThemePicker {
	if appStyles == nil {
		appStyles = styles.DefaultStyles()
	}
	t := ThemePicker{
		styles:          appStyles,
		availableThemes: availableThemes,
	}
	t.SetCurrent(currentTheme)
	return t
}

// SetCurrent marks name as the active theme and moves the cursor to it.
func (t *ThemePicker) SetCurrent(name string) {
	t.currentTheme = name
	for i, theme := range t.availableThemes {
		if theme == name {
			t.cursor = i
			return
		}
	}
}

// Show makes the theme picker visible
func (t *ThemePicker) Show() {
	t.visible = true
}

// Hide makes the theme picker invisible
func (t *ThemePicker) Hide() {
	t.visible = false
}

// IsVisible returns whether the theme picker is visible
func (t ThemePicker) IsVisible() bool {
	return t.visible
}

// SetSize sets the dimensions for centering
func (t *ThemePicker) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// GetCursor returns the current cursor position
func (t ThemePicker) GetCursor() int {
	return t.cursor
}

// Update handles messages
func (t ThemePicker) Update(msg tea.Msg) (ThemePicker, tea.Cmd) {
	if !t.visible {
		return t, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	switch {
	case key.Matches(keyMsg, pickerCancel):
		t.visible = false

	case key.Matches(keyMsg, pickerUp):
		if t.cursor > 0 {
			t.cursor--
		}

	case key.Matches(keyMsg, pickerDown):
		if t.cursor < len(t.availableThemes)-1 {
			t.cursor++
		}

	case key.Matches(keyMsg, pickerSelect):
		if len(t.availableThemes) == 0 {
			return t, nil
		}
		selected := t.availableThemes[t.cursor]
		t.visible = false
		return t, func() tea.Msg {
			return ThemeSelectedMsg{ThemeName: selected}
		}
	}

	return t, nil
}

// View renders the theme picker
func (t ThemePicker) View() string {
	if !t.visible {
		return ""
	}

	theme := t.styles.Theme
	selected := lipgloss.NewStyle().Foreground(theme.SelectForeground).Background(theme.SelectBackground)
	normal := lipgloss.NewStyle().Foreground(theme.Foreground)

	var list strings.Builder
	for i, name := range t.availableThemes {
		cursor := " "
		if i == t.cursor {
			cursor = ">"
		}
		current := ""
		if name == t.currentTheme {
			current = " (current)"
		}

		line := fmt.Sprintf("%s %s%s", cursor, name, current)
		if i == t.cursor {
			line = selected.Render(line)
		} else {
			line = normal.Render(line)
		}
		list.WriteString(line + "\n")
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		t.styles.Title.Render("Select Theme"),
		"",
		list.String(),
		t.styles.Muted.Render("↑/↓: navigate • enter: select • esc/q: cancel"),
	)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(content)

	if t.width > 0 && t.height > 0 {
		modal = lipgloss.Place(t.width, t.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return modal
}
