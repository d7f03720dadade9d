// Package app holds the root Bubble Tea model for watch mode.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Elpulgo/azdo-buildstats/internal/buildstats"
	"github.com/Elpulgo/azdo-buildstats/internal/polling"
	"github.com/Elpulgo/azdo-buildstats/internal/render"
	"github.com/Elpulgo/azdo-buildstats/internal/ui/components"
	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
)

// Lines used by everything but the table: title, summary, error and status bar.
const chromeHeight = 6

// Options configure the watch model.
type Options struct {
	Organization string
	TeamProject  string
	Styles       *styles.Styles
	// OnThemeSelected persists a theme picked in the UI. Nil disables persistence.
	OnThemeSelected func(name string) error
}

// Model is the root application model for the TUI
type Model struct {
	poller       *polling.Poller
	errorHandler *polling.ErrorHandler
	statusBar    *components.StatusBar
	loading      *components.LoadingIndicator
	help         *components.HelpModal
	themePicker  components.ThemePicker
	keys         components.KeyMap
	table        table.Model
	styles       *styles.Styles
	onTheme      func(string) error
	themeErr     error
	snapshot     buildstats.Snapshot
	hasData      bool
	width        int
	height       int
}

// NewModel creates the watch model. The poller supplies snapshots.
func NewModel(poller *polling.Poller, opts Options) Model {
	st := opts.Styles
	if st == nil {
		st = styles.DefaultStyles()
	}
	keys := components.DefaultKeyMap()

	statusBar := components.NewStatusBar(st)
	statusBar.SetOrganization(opts.Organization)
	statusBar.SetProject(opts.TeamProject)
	statusBar.SetHelpText("r refresh • t theme • ? help • q quit")

	loading := components.NewLoadingIndicator(st)
	loading.SetVisible(true)

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(st))

	return Model{
		poller:       poller,
		errorHandler: polling.NewErrorHandler(),
		statusBar:    statusBar,
		loading:      loading,
		help:         components.NewHelpModal(st, keys),
		themePicker:  components.NewThemePicker(st, styles.ListAvailableThemes(), st.Theme.Name),
		keys:         keys,
		table:        t,
		styles:       st,
		onTheme:      opts.OnThemeSelected,
	}
}

func tableStyles(st *styles.Styles) table.Styles {
	ts := table.DefaultStyles()
	ts.Header = st.TableHeader.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(st.Theme.Border).
		BorderBottom(true)
	ts.Cell = st.TableCell
	ts.Selected = st.TableSelected
	return ts
}

// Init starts the first fetch and the polling timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loading.Init(),
		m.poller.FetchSnapshot(),
		m.poller.StartPolling(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.poller.Stop()
			return m, tea.Quit
		}
		// Open overlays take the keys.
		if m.help.IsVisible() {
			m.help, _ = m.help.Update(msg)
			return m, nil
		}
		if m.themePicker.IsVisible() {
			var cmd tea.Cmd
			m.themePicker, cmd = m.themePicker.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.poller.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading.SetVisible(true)
			m.statusBar.SetState(polling.StateConnecting)
			return m, tea.Batch(m.poller.FetchSnapshot(), m.loading.Tick())
		case key.Matches(msg, m.keys.Help):
			m.help.Show()
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			m.themePicker.SetCurrent(m.styles.Theme.Name)
			m.themePicker.Show()
			return m, nil
		}

	case components.ThemeSelectedMsg:
		m.applyTheme(msg.ThemeName)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetWidth(msg.Width)
		m.help.SetSize(msg.Width, msg.Height)
		m.themePicker.SetSize(msg.Width, msg.Height)
		m.table.SetColumns(columns(msg.Width))
		m.table.SetWidth(msg.Width)
		if h := msg.Height - chromeHeight; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case polling.TickMsg:
		m.loading.SetVisible(true)
		return m, tea.Batch(m.poller.OnTick(), m.loading.Tick())

	case polling.SnapshotUpdated:
		snapshot, hasErr := m.errorHandler.ProcessUpdate(msg)
		m.loading.SetVisible(false)
		if hasErr {
			m.statusBar.SetState(polling.StateError)
		} else {
			m.statusBar.SetState(polling.StateConnected)
			m.statusBar.SetLastUpdated(snapshot.FetchedAt)
		}
		if _, ok := m.errorHandler.LastKnownGood(); ok {
			m.snapshot = snapshot
			m.hasData = true
			m.table.SetRows(rows(snapshot.Report))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.loading, cmd = m.loading.Update(msg)
	cmds = append(cmds, cmd)

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// applyTheme restyles every component and persists the choice.
func (m *Model) applyTheme(name string) {
	theme, err := styles.GetThemeByName(name)
	if err != nil {
		m.themeErr = err
		return
	}

	// Components share the styles pointer, so updating it in place restyles them all.
	*m.styles = *styles.NewStyles(theme)
	m.table.SetStyles(tableStyles(m.styles))
	m.themePicker.SetCurrent(name)

	m.themeErr = nil
	if m.onTheme != nil {
		if err := m.onTheme(name); err != nil {
			m.themeErr = fmt.Errorf("failed to save theme: %w", err)
		}
	}
}

// View renders the application UI
func (m Model) View() string {
	if m.help.IsVisible() {
		return m.help.View()
	}
	if m.themePicker.IsVisible() {
		return m.themePicker.View()
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Build status"))
	if m.loading.IsVisible() {
		b.WriteString("  " + m.loading.View())
	}
	b.WriteString("\n")

	if m.hasData {
		if len(m.snapshot.Report.Projects) == 0 {
			b.WriteString(m.styles.Muted.Render("No builds found in the selected window.") + "\n")
		} else {
			b.WriteString(m.table.View() + "\n")
		}
		b.WriteString(m.summary() + "\n")
	}

	if m.errorHandler.HasError() {
		b.WriteString(m.styles.Error.Render("Error: "+m.errorHandler.ErrorMessage()) + "\n")
		b.WriteString(m.styles.Warning.Render(m.errorHandler.RecoveryMessage()) + "\n")
	}
	if m.themeErr != nil {
		b.WriteString(m.styles.Error.Render(m.themeErr.Error()) + "\n")
	}

	b.WriteString(m.statusBar.View())
	return b.String()
}

func (m Model) summary() string {
	st := m.styles
	stats := m.snapshot.Stats
	parts := []string{
		st.Label.Render("Builds (24h): ") + st.Value.Render(fmt.Sprint(stats.TotalBuilds)),
		st.Label.Render("Project failures: ") + st.Error.Render(fmt.Sprint(stats.TotalProjectFailures)),
		st.Label.Render("Build failures: ") + st.Error.Render(fmt.Sprint(stats.TotalBuildFailures)),
		st.Label.Render("Downtime: ") + st.Warning.Render(render.FormatMinutes(m.snapshot.DowntimeMinutes)),
	}
	return strings.Join(parts, "   ")
}

// columns sizes the report columns to the terminal width.
func columns(width int) []table.Column {
	if width < 80 {
		width = 80
	}
	pct := []int{30, 18, 14, 20, 12}
	cols := make([]table.Column, len(render.ReportHeaders))
	for i, title := range render.ReportHeaders {
		cols[i] = table.Column{Title: title, Width: width * pct[i] / 100}
	}
	return cols
}

func rows(report buildstats.BuildStatusReport) []table.Row {
	flat := render.ReportRows(report)
	out := make([]table.Row, len(flat))
	for i, r := range flat {
		r[2] = statusIcon(buildstats.ParseStatus(r[2])) + " " + r[2]
		out[i] = table.Row(r)
	}
	return out
}

func statusIcon(s buildstats.Status) string {
	switch s {
	case buildstats.StatusSucceeded:
		return "✓"
	case buildstats.StatusFailed:
		return "✗"
	default:
		return "○"
	}
}
