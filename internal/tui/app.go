package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the root bubbletea model: a single focused component plus
// global quit handling.
type Model struct {
	component Component
	quitting  bool
}

// NewModel creates a root model around the component and focuses it.
func NewModel(c Component) Model {
	c.Focus()
	return Model{component: c}
}

// Component returns the wrapped component.
func (m Model) Component() Component {
	return m.component
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.component.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.component.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.component, cmd = m.component.Update(msg)
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.component.View()
}

// Run starts the TUI around the component and blocks until quit.
func Run(c Component) error {
	p := tea.NewProgram(NewModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
