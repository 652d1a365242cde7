package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ParseInt converts raw user input to an integer. Empty or non-numeric input
// yields def. No range is enforced.
func ParseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// NumberModel asks for an integer with a default.
type NumberModel struct {
	message string
	def     int
	input   textinput.Model
	keys    keyMap

	value   int
	done    bool
	aborted bool
}

// NewNumberModel builds a numeric entry prompt.
func NewNumberModel(message string, def int) *NumberModel {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(def)
	ti.CharLimit = 9
	ti.Width = 12
	ti.Focus()

	return &NumberModel{message: message, def: def, input: ti, keys: defaultKeyMap(), value: def}
}

// Init implements tea.Model
func (m *NumberModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *NumberModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.value = ParseInt(m.input.Value(), m.def)
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *NumberModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", Title.Render(m.message), Answer.Render(strconv.Itoa(m.value)))
	}
	if m.aborted {
		return ""
	}
	return fmt.Sprintf("%s (default %d)\n%s\n\n%s\n",
		Title.Render(m.message), m.def, m.input.View(), Help.Render("enter confirm • esc cancel"))
}

// Value returns the entered number and whether it was confirmed.
func (m *NumberModel) Value() (int, bool) {
	return m.value, m.done
}
