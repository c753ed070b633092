package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/watchlog/internal/disambiguate"
	watchlogerrors "github.com/lepinkainen/watchlog/internal/errors"
	"github.com/lepinkainen/watchlog/internal/media"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typed returns one key message per character of s.
func typed(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, runes(string(r)))
	}
	return msgs
}

func keys(msgs ...any) []tea.Msg {
	var out []tea.Msg
	for _, m := range msgs {
		switch v := m.(type) {
		case []tea.Msg:
			out = append(out, v...)
		case tea.Msg:
			out = append(out, v)
		}
	}
	return out
}

// scriptPrograms replaces runProgram with one that feeds each program the
// next script of messages, in order.
func scriptPrograms(t *testing.T, scripts ...[]tea.Msg) {
	t.Helper()
	original := runProgram
	t.Cleanup(func() { runProgram = original })

	runProgram = func(m tea.Model) (tea.Model, error) {
		require.NotEmpty(t, scripts, "unexpected program run")
		script := scripts[0]
		scripts = scripts[1:]
		for _, msg := range script {
			m, _ = m.Update(msg)
		}
		return m, nil
	}
}

func testPage(nav disambiguate.Nav) disambiguate.Page {
	return disambiguate.Page{
		Query:      "dune",
		Number:     1,
		TotalPages: 2,
		Candidates: []media.Candidate{
			{Title: "Dune", Year: "2021", MediaType: "movie", ID: 438631},
			{Title: "Dune", Year: "1984", MediaType: "movie", ID: 841},
		},
		Nav: nav,
	}
}

func TestPageItemsAppendNavEntry(t *testing.T) {
	items := pageItems(testPage(disambiguate.NavNextPage))
	require.Len(t, items, 3)

	last := items[2].(pageItem)
	assert.Equal(t, "[next page]", last.label)
	assert.Equal(t, disambiguate.NavNextPage, last.nav)
	assert.Equal(t, "Dune (1984)", items[1].FilterValue())
}

func TestChoosePagePicksCandidate(t *testing.T) {
	scriptPrograms(t, keys(down, enter))

	choice, err := ChoosePage(testPage(disambiguate.NavNextPage))
	require.NoError(t, err)
	assert.Equal(t, disambiguate.Pick(1), choice)
}

func TestChoosePageNavigates(t *testing.T) {
	scriptPrograms(t,
		keys(down, down, enter),
		keys(down, down, enter),
	)

	choice, err := ChoosePage(testPage(disambiguate.NavNextPage))
	require.NoError(t, err)
	assert.Equal(t, disambiguate.Navigate(disambiguate.NavNextPage), choice)

	choice, err = ChoosePage(testPage(disambiguate.NavStartOver))
	require.NoError(t, err)
	assert.Equal(t, disambiguate.Navigate(disambiguate.NavStartOver), choice)
}

func TestChoosePageStop(t *testing.T) {
	for _, key := range []tea.KeyMsg{ctrlC, runes("q")} {
		scriptPrograms(t, keys(key))

		_, err := ChoosePage(testPage(disambiguate.NavNextPage))
		assert.True(t, watchlogerrors.IsStopProcessingError(err), key.String())
	}
}

func TestPickerView(t *testing.T) {
	m := newPickerModel(testPage(disambiguate.NavStartOver))
	view := m.View()
	assert.Contains(t, view, `Results for "dune" (page 1 of 2)`)
	assert.Contains(t, view, "[start over]")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b c", truncate("a  b\n c", 0))
	assert.Equal(t, "abc...", truncate("abcdefghij", 6))
	assert.Equal(t, "ab", truncate("abcdefghij", 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 72, clamp(72, 0, 40))
	assert.Equal(t, 50, clamp(72, 50, 40))
	assert.Equal(t, 40, clamp(72, 10, 40))
}
