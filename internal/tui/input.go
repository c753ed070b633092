package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type inputModel struct {
	input    textinput.Model
	label    string
	validate func(string) error
	err      error
	value    string
	done     bool
	stopped  bool
}

func newInputModel(label, placeholder, initial string, validate func(string) error) *inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = defaultListWidth - 4
	ti.SetValue(initial)
	ti.Focus()

	return &inputModel{input: ti, label: label, validate: validate}
}

func (m *inputModel) Init() tea.Cmd { return textinput.Blink }

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := m.input.Value()
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.stopped = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	parts := []string{headerStyle.Render(m.label), m.input.View()}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, helpStyle.Render("Enter accept | Esc stop"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Input reads one line of text. initial pre-fills the field. Enter is
// refused while validate returns an error.
func Input(label, placeholder, initial string, validate func(string) error) (string, error) {
	finalModel, err := runProgram(newInputModel(label, placeholder, initial, validate))
	if err != nil {
		return "", err
	}

	typed, ok := finalModel.(*inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected program result")
	}
	if typed.stopped || !typed.done {
		return "", errStopped()
	}
	return typed.value, nil
}

type confirmModel struct {
	label   string
	value   bool
	done    bool
	stopped bool
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.stopped = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	yes, no := " Yes ", " No "
	if m.value {
		yes = selectedButtonStyle.Render(yes)
		no = buttonStyle.Render(no)
	} else {
		yes = buttonStyle.Render(yes)
		no = selectedButtonStyle.Render(no)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no)
	help := helpStyle.Render("y/n answer | Left/Right toggle | Enter accept | q stop")
	return lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render(m.label), buttons, help)
}

var (
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252"))

	selectedButtonStyle = buttonStyle.Copy().
				Background(lipgloss.Color("178")).
				Foreground(lipgloss.Color("0")).
				Bold(true)
)

// Confirm asks a yes/no question. Enter accepts the highlighted answer,
// which starts at def.
func Confirm(label string, def bool) (bool, error) {
	finalModel, err := runProgram(&confirmModel{label: label, value: def})
	if err != nil {
		return false, err
	}

	typed, ok := finalModel.(*confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected program result")
	}
	if typed.stopped || !typed.done {
		return false, errStopped()
	}
	return typed.value, nil
}
