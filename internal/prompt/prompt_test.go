package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codextract/internal/selector"
	"codextract/pkg/testutils"
)

var folderOptions = []selector.Option{
	{Label: "src", Value: "/proj/src"},
	{Label: "docs", Value: "/proj/docs"},
	{Label: selector.ThisFolderLabel, Value: "/proj"},
}

func press(t *testing.T, m tea.Model, msgs ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestChooseModelSelectsHighlightedOption(t *testing.T) {
	m := NewChooseModel("Select a folder", folderOptions)
	assert.Equal(t, 0, m.Cursor())

	model, cmd := press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	chosen, ok := model.(*ChooseModel).Chosen()
	require.True(t, ok)
	assert.Equal(t, "/proj/docs", chosen.Value)
	assert.Contains(t, testutils.StripANSI(model.View()), "docs")
}

func TestChooseModelVimKeys(t *testing.T) {
	m := NewChooseModel("Select a folder", folderOptions)

	model, _ := press(t, m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")},
	)
	assert.Equal(t, 1, model.(*ChooseModel).Cursor())
}

func TestChooseModelCursorStaysInBounds(t *testing.T) {
	m := NewChooseModel("Select a folder", folderOptions)

	model, _ := press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.(*ChooseModel).Cursor())

	model, _ = press(t, model,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
	)
	assert.Equal(t, 2, model.(*ChooseModel).Cursor())
}

func TestChooseModelAbort(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			model, cmd := press(t, NewChooseModel("Select a folder", folderOptions), msg)
			require.NotNil(t, cmd)
			_, ok := model.(*ChooseModel).Chosen()
			assert.False(t, ok)
			assert.Empty(t, model.View())
		})
	}
}

func TestChooseModelView(t *testing.T) {
	m := NewChooseModel("Select a folder (current: /proj)", folderOptions)
	view := testutils.StripANSI(m.View())

	assert.Contains(t, view, "Select a folder (current: /proj)")
	assert.Contains(t, view, "src")
	assert.Contains(t, view, selector.ThisFolderLabel)
}

func TestNumberModel(t *testing.T) {
	t.Run("typed value", func(t *testing.T) {
		model, cmd := press(t, NewNumberModel("Depth", 5),
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")},
			tea.KeyMsg{Type: tea.KeyEnter},
		)
		require.NotNil(t, cmd)
		value, ok := model.(*NumberModel).Value()
		require.True(t, ok)
		assert.Equal(t, 2, value)
	})

	t.Run("empty input uses default", func(t *testing.T) {
		model, _ := press(t, NewNumberModel("Depth", 5), tea.KeyMsg{Type: tea.KeyEnter})
		value, ok := model.(*NumberModel).Value()
		require.True(t, ok)
		assert.Equal(t, 5, value)
	})

	t.Run("non-numeric input uses default", func(t *testing.T) {
		model, _ := press(t, NewNumberModel("Depth", 5),
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("deep")},
			tea.KeyMsg{Type: tea.KeyEnter},
		)
		value, _ := model.(*NumberModel).Value()
		assert.Equal(t, 5, value)
	})

	t.Run("abort", func(t *testing.T) {
		model, _ := press(t, NewNumberModel("Depth", 5), tea.KeyMsg{Type: tea.KeyEsc})
		_, ok := model.(*NumberModel).Value()
		assert.False(t, ok)
	})

	t.Run("view shows default", func(t *testing.T) {
		view := testutils.StripANSI(NewNumberModel("Depth", 5).View())
		assert.Contains(t, view, "Depth")
		assert.Contains(t, view, "default 5")
	})
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 5},
		{"   ", 5},
		{"3", 3},
		{" 12 ", 12},
		{"0", 0},
		{"-1", -1},
		{"abc", 5},
		{"2.5", 5},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt(tt.raw, 5))
		})
	}
}
