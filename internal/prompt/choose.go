package prompt

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"codextract/internal/selector"
)

const (
	listWidth     = 72
	maxListHeight = 20
)

type item struct {
	option selector.Option
}

func (i item) Title() string       { return i.option.Label }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return i.option.Label }

// ChooseModel is a single-choice list prompt.
type ChooseModel struct {
	message string
	list    list.Model
	keys    keyMap

	chosen  selector.Option
	done    bool
	aborted bool
}

// NewChooseModel builds a list prompt over options with the cursor on the first one.
func NewChooseModel(message string, options []selector.Option) *ChooseModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = item{option: o}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	height := len(options) + 8
	if height > maxListHeight {
		height = maxListHeight
	}

	keys := defaultKeyMap()
	l := list.New(items, delegate, listWidth, height)
	l.Title = message
	l.Styles.Title = Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Submit, keys.Abort}
	}

	return &ChooseModel{message: message, list: l, keys: keys}
}

// Init implements tea.Model
func (m *ChooseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *ChooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = it.option
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *ChooseModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", Title.Render(m.message), Answer.Render(m.chosen.Label))
	}
	if m.aborted {
		return ""
	}
	return App.Render(m.list.View())
}

// Chosen returns the selected option and whether one was confirmed.
func (m *ChooseModel) Chosen() (selector.Option, bool) {
	return m.chosen, m.done
}

// Cursor returns the highlighted row.
func (m *ChooseModel) Cursor() int {
	return m.list.Index()
}
