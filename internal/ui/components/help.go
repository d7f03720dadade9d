package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
)

// KeyMap holds the key bindings of the watch view.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the watch view key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Move down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh now"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Select theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// HelpSection is a titled group of bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// Sections groups the bindings for the help overlay.
func (k KeyMap) Sections() []HelpSection {
	return []HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down}},
		{Title: "Actions", Bindings: []key.Binding{k.Refresh, k.Theme, k.Help, k.Quit}},
	}
}

// HelpModal is an overlay that displays available keybindings.
type HelpModal struct {
	styles   *styles.Styles
	visible  bool
	width    int
	height   int
	sections []HelpSection
}

// NewHelpModal creates a help overlay for keys. A nil s uses the default styles.
func NewHelpModal(s *styles.Styles, keys KeyMap) *HelpModal {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &HelpModal{
		styles:   s,
		sections: keys.Sections(),
	}
}

// Show makes the help modal visible.
func (h *HelpModal) Show() {
	h.visible = true
}

// Hide hides the help modal.
func (h *HelpModal) Hide() {
	h.visible = false
}

// Toggle toggles the help modal visibility.
func (h *HelpModal) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns true if the modal is visible.
func (h *HelpModal) IsVisible() bool {
	return h.visible
}

// SetSize sets the available size for the modal.
func (h *HelpModal) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Update closes the modal on esc, q or ?.
func (h *HelpModal) Update(msg tea.Msg) (*HelpModal, tea.Cmd) {
	if !h.visible {
		return h, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "?":
			h.Hide()
		}
	}
	return h, nil
}

// View renders the help modal overlay.
func (h *HelpModal) View() string {
	if !h.visible {
		return ""
	}

	theme := h.styles.Theme
	keyStyle := h.styles.Key.Width(12)

	var content strings.Builder
	content.WriteString(h.styles.Title.MarginBottom(1).Render("⌨ Keyboard Shortcuts"))
	content.WriteString("\n")

	for _, section := range h.sections {
		content.WriteString(h.styles.Subtitle.MarginTop(1).Render(section.Title))
		content.WriteString("\n")
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			content.WriteString(keyStyle.Render(help.Key) + h.styles.Description.Render(help.Desc))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(h.styles.Muted.Render("Press esc, q, or ? to close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Render(content.String())

	if h.width > 0 && h.height > 0 {
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return modal
}
