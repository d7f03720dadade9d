package patinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Elpulgo/azdo-buildstats/internal/ui/styles"
)

// PATSubmittedMsg is sent when a PAT has been successfully submitted
type PATSubmittedMsg struct {
	PAT string
}

// Model represents the PAT input view model
type Model struct {
	textInput textinput.Model
	styles    *styles.Styles
	update    bool
	err       string
	submitted bool
	cancelled bool
}

// NewModel creates a PAT input model for first-time setup.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "Enter your Azure DevOps Personal Access Token"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return Model{
		textInput: ti,
		styles:    styles.DefaultStyles(),
	}
}

// NewModelForUpdate creates a PAT input model that replaces a stored PAT.
func NewModelForUpdate() Model {
	m := NewModel()
	m.update = true
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			pat := strings.TrimSpace(m.textInput.Value())
			if pat == "" {
				m.err = "PAT cannot be empty"
				return m, nil
			}

			m.submitted = true
			m.err = ""
			return m, tea.Batch(
				func() tea.Msg { return PATSubmittedMsg{PAT: pat} },
				tea.Quit,
			)

		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the PAT input view
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Azure DevOps Personal Access Token Setup") + "\n\n")
	if m.update {
		b.WriteString("Enter a new Personal Access Token to replace the stored one:\n\n")
	} else {
		b.WriteString("No PAT found in keyring. Please enter your Personal Access Token:\n\n")
	}

	b.WriteString(m.styles.Muted.Render("Required scopes: Build (Read), Project and Team (Read)") + "\n\n")
	b.WriteString(m.textInput.View() + "\n\n")

	if m.err != "" {
		b.WriteString(m.styles.Error.Bold(true).Render("Error: "+m.err) + "\n\n")
	}

	b.WriteString(m.styles.Muted.Render("Press Enter to submit • Esc to quit"))

	return b.String()
}

// GetPAT returns the entered PAT value
func (m Model) GetPAT() string {
	return strings.TrimSpace(m.textInput.Value())
}

// Submitted reports whether a PAT was submitted.
func (m Model) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user quit without submitting.
func (m Model) Cancelled() bool {
	return m.cancelled
}
