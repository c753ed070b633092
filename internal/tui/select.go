// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/watchlog/internal/disambiguate"
	watchlogerrors "github.com/lepinkainen/watchlog/internal/errors"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// errStopped is returned by every prompt when the user presses Ctrl+C.
func errStopped() error {
	return watchlogerrors.NewStopProcessingError("stopped by user")
}

// pageItem is one line of the picker: a candidate or the navigation entry.
type pageItem struct {
	label string
	kind  string
	index int
	nav   disambiguate.Nav
}

func (i pageItem) FilterValue() string { return i.label }

func pageItems(page disambiguate.Page) []list.Item {
	items := make([]list.Item, 0, len(page.Candidates)+1)
	for i, c := range page.Candidates {
		items = append(items, pageItem{
			label: fmt.Sprintf("%s (%s)", c.Title, c.Year),
			kind:  c.MediaType,
			index: i,
			nav:   disambiguate.NavNone,
		})
	}
	return append(items, pageItem{label: page.Nav.Label(), index: -1, nav: page.Nav})
}

type itemStyles struct {
	normal    lipgloss.Style
	selected  lipgloss.Style
	typeStyle lipgloss.Style
	navStyle  lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		typeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		navStyle: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("247")),
	}
}

type pageDelegate struct {
	styles itemStyles
}

func newDelegate() pageDelegate {
	return pageDelegate{styles: newItemStyles()}
}

func (d pageDelegate) Height() int                         { return 3 }
func (d pageDelegate) Spacing() int                        { return 0 }
func (d pageDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d pageDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	entry, ok := item.(pageItem)
	if !ok {
		return
	}

	var line string
	if entry.nav != disambiguate.NavNone {
		line = d.styles.navStyle.Render(entry.label)
	} else {
		kind := d.styles.typeStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(entry.kind)))
		line = kind + " " + truncate(entry.label, m.Width()-12)
	}

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(line))
}

type pickerModel struct {
	list    list.Model
	page    disambiguate.Page
	choice  disambiguate.Choice
	done    bool
	stopped bool
}

func newPickerModel(page disambiguate.Page) *pickerModel {
	l := list.New(pageItems(page), newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &pickerModel{list: l, page: page}
}

func (m *pickerModel) Init() tea.Cmd { return nil }

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(pageItem); ok {
				if selected.nav != disambiguate.NavNone {
					m.choice = disambiguate.Navigate(selected.nav)
				} else {
					m.choice = disambiguate.Pick(selected.index)
				}
				m.done = true
				return m, tea.Quit
			}
		case "ctrl+c", "q":
			m.stopped = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *pickerModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for %q (page %d of %d)", m.page.Query, m.page.Number, m.page.TotalPages))
	help := helpStyle.Render("Up/Down navigate | Enter select | q stop")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("161"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// ChoosePage shows one page of candidates followed by its navigation entry
// and returns what the user picked.
func ChoosePage(page disambiguate.Page) (disambiguate.Choice, error) {
	finalModel, err := runProgram(newPickerModel(page))
	if err != nil {
		return disambiguate.Choice{}, err
	}

	typed, ok := finalModel.(*pickerModel)
	if !ok {
		return disambiguate.Choice{}, fmt.Errorf("unexpected program result")
	}
	if typed.stopped || !typed.done {
		return disambiguate.Choice{}, errStopped()
	}
	return typed.choice, nil
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
