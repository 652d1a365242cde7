// Package prompt implements the interactive questions asked during a run on
// top of bubbletea.
package prompt

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	serr "codextract/internal/errors"
	"codextract/internal/selector"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = serr.New("prompt aborted")

// Terminal runs one bubbletea program per question.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a Terminal. Prompts render on stderr so stdout carries
// only the result of the run.
func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stderr}
}

// NewTerminalWithIO creates a Terminal on the given streams.
func NewTerminalWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Choose shows options and returns the Value of the confirmed one.
func (t *Terminal) Choose(message string, options []selector.Option) (string, error) {
	final, err := t.run(NewChooseModel(message, options))
	if err != nil {
		return "", err
	}
	chosen, ok := final.(*ChooseModel).Chosen()
	if !ok {
		return "", ErrAborted
	}
	return chosen.Value, nil
}

// AskInt asks for an integer, returning def on empty or non-numeric input.
func (t *Terminal) AskInt(message string, def int) (int, error) {
	final, err := t.run(NewNumberModel(message, def))
	if err != nil {
		return 0, err
	}
	value, ok := final.(*NumberModel).Value()
	if !ok {
		return 0, ErrAborted
	}
	return value, nil
}

func (t *Terminal) run(model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, serr.Wrap(err, "prompt failed")
	}
	return final, nil
}
