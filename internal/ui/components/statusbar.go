// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/azdo-buildstats/internal/polling"
	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
)

// StatusBar displays connection state, organization and project scope,
// the last refresh time and key hints at the bottom of the screen.
type StatusBar struct {
	styles       *styles.Styles
	organization string
	project      string
	state        polling.ConnectionState
	lastUpdated  time.Time
	helpText     string
	width        int
}

// NewStatusBar creates a new StatusBar with default values.
func NewStatusBar(s *styles.Styles) *StatusBar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &StatusBar{
		styles:   s,
		state:    polling.StateConnecting,
		helpText: "r refresh • q quit",
	}
}

// SetOrganization sets the organization name to display.
func (s *StatusBar) SetOrganization(org string) {
	s.organization = org
}

// SetProject sets the team project scope to display.
func (s *StatusBar) SetProject(project string) {
	s.project = project
}

// SetState sets the connection state.
func (s *StatusBar) SetState(state polling.ConnectionState) {
	s.state = state
}

// State returns the connection state.
func (s *StatusBar) State() polling.ConnectionState {
	return s.state
}

// SetLastUpdated sets the time of the last successful refresh.
func (s *StatusBar) SetLastUpdated(t time.Time) {
	s.lastUpdated = t
}

// SetHelpText sets custom help text to display.
func (s *StatusBar) SetHelpText(text string) {
	s.helpText = text
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.renderOrgProject()
	center := s.renderConnectionState()
	if !s.lastUpdated.IsZero() {
		center += s.styles.Muted.Render("  updated " + s.lastUpdated.Local().Format("15:04:05"))
	}
	right := s.styles.Muted.Render(s.helpText)

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	// Minimum viable width
	minWidth := leftLen + centerLen + rightLen + 4
	width := s.width
	if width < minWidth {
		width = minWidth
	}

	remainingSpace := width - (leftLen + centerLen + rightLen)
	leftPadding := remainingSpace / 2
	rightPadding := remainingSpace - leftPadding

	bar := left + strings.Repeat(" ", leftPadding) + center + strings.Repeat(" ", rightPadding) + right

	return lipgloss.NewStyle().
		Background(s.styles.Theme.Background).
		Foreground(s.styles.Theme.Foreground).
		Padding(0, 1).
		Inline(true).
		Render(bar)
}

func (s *StatusBar) renderOrgProject() string {
	bold := s.styles.Value.Bold(true)
	sep := s.styles.Muted.Render("/")

	switch {
	case s.organization != "" && s.project != "":
		return bold.Render(s.organization) + sep + bold.Render(s.project)
	case s.organization != "":
		return bold.Render(s.organization)
	case s.project != "":
		return bold.Render(s.project)
	}
	return ""
}

func (s *StatusBar) renderConnectionState() string {
	switch s.state {
	case polling.StateConnected:
		return s.styles.Connected.Render("● connected")
	case polling.StateConnecting:
		return s.styles.Connecting.Render("○ connecting")
	case polling.StateDisconnected:
		return s.styles.Disconnected.Render("○ disconnected")
	case polling.StateError:
		return s.styles.ConnError.Render("✗ error")
	default:
		return s.styles.Disconnected.Render(fmt.Sprintf("? %s", s.state))
	}
}
