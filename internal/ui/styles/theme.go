package styles

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the application.
// All colors are represented as lipgloss.Color which can be ANSI 256 colors
// (e.g., "33") or hex colors (e.g., "#7c6f64").
type Theme struct {
	Name string

	// Primary colors for headers, active elements, and emphasis
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Build outcome colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Background      lipgloss.Color
	Foreground      lipgloss.Color
	ForegroundMuted lipgloss.Color

	SelectForeground lipgloss.Color
	SelectBackground lipgloss.Color

	Border  lipgloss.Color
	Spinner lipgloss.Color
}

var (
	ErrThemeNameRequired = errors.New("theme name is required")
	ErrThemeNotFound     = errors.New("theme not found")
)

// Validate checks that the theme is named and has its status colors set.
func (t Theme) Validate() error {
	if t.Name == "" {
		return ErrThemeNameRequired
	}
	if t.Success == "" || t.Error == "" || t.Warning == "" {
		return errors.New("theme " + t.Name + " is missing status colors")
	}
	return nil
}
