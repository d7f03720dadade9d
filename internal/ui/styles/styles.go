package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
)

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Key         lipgloss.Style
	Description lipgloss.Style
	Spinner     lipgloss.Style
	Border      lipgloss.Style

	// Connection state styles
	Connected    lipgloss.Style
	Connecting   lipgloss.Style
	Disconnected lipgloss.Style
	ConnError    lipgloss.Style

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style
}

// NewStyles creates a new Styles instance from the given theme.
func NewStyles(theme Theme) *Styles {
	s := &Styles{
		Theme: theme,
	}

	s.Header = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Title = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	s.Label = lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true)

	s.Value = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Muted = lipgloss.NewStyle().
		Foreground(theme.ForegroundMuted)

	s.Success = lipgloss.NewStyle().
		Foreground(theme.Success)

	s.Warning = lipgloss.NewStyle().
		Foreground(theme.Warning)

	s.Error = lipgloss.NewStyle().
		Foreground(theme.Error)

	s.Key = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	s.Description = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Spinner = lipgloss.NewStyle().
		Foreground(theme.Spinner)

	s.Border = lipgloss.NewStyle().
		Foreground(theme.Border)

	s.Connected = lipgloss.NewStyle().
		Foreground(theme.Success)

	s.Connecting = lipgloss.NewStyle().
		Foreground(theme.Warning)

	s.Disconnected = lipgloss.NewStyle().
		Foreground(theme.ForegroundMuted)

	s.ConnError = lipgloss.NewStyle().
		Foreground(theme.Error)

	s.TableHeader = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Padding(0, 1)

	s.TableCell = lipgloss.NewStyle().
		Padding(0, 1)

	s.TableSelected = lipgloss.NewStyle().
		Foreground(theme.SelectForeground).
		Background(theme.SelectBackground).
		Bold(false)

	return s
}

// DefaultStyles returns styles using the default dark theme.
func DefaultStyles() *Styles {
	return NewStyles(GetDefaultTheme())
}

// ForStatus returns the style used to render a build outcome.
func (s *Styles) ForStatus(status buildstats.Status) lipgloss.Style {
	switch status {
	case buildstats.StatusSucceeded:
		return s.Success
	case buildstats.StatusFailed:
		return s.Error
	default:
		return s.Warning
	}
}
