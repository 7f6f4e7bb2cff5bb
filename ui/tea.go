package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/tictac/board"
	"github.com/drake/tictac/protocol"
	"github.com/drake/tictac/session"
	"github.com/drake/tictac/ui/style"
)

var _ session.Prompter = (*TeaPrompter)(nil)

// TeaPrompter asks for moves with an inline Bubble Tea program. It only
// owns the terminal while a prompt is open; the rest of the game is plain
// output.
type TeaPrompter struct {
	styles style.Styles
	opts   []tea.ProgramOption
}

// NewTeaPrompter creates a prompter. opts are passed to every program.
func NewTeaPrompter(opts ...tea.ProgramOption) *TeaPrompter {
	return &TeaPrompter{
		styles: style.DefaultStyles(lipgloss.DefaultRenderer()),
		opts:   opts,
	}
}

// PromptMove runs the prompt until a valid move is entered or the player
// quits with Ctrl+C or Esc.
func (p *TeaPrompter) PromptMove(_ board.Board, self protocol.Player) (int, error) {
	final, err := tea.NewProgram(newMoveModel(p.styles, self), p.opts...).Run()
	if err != nil {
		return 0, fmt.Errorf("running prompt: %w", err)
	}

	m := final.(moveModel)
	if !m.done {
		return 0, ErrInputClosed
	}
	return m.move, nil
}

// moveModel is the Bubble Tea model for a single move prompt.
type moveModel struct {
	input   textinput.Model
	styles  style.Styles
	errText string

	move    int
	done    bool
	aborted bool
}

func newMoveModel(styles style.Styles, self protocol.Player) moveModel {
	ti := textinput.New()
	ti.Prompt = styles.Prompt.Render(MovePrompt)
	ti.Placeholder = self.String()
	ti.CharLimit = 1
	ti.Focus()

	return moveModel{
		input:  ti,
		styles: styles,
	}
}

func (m moveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m moveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit

		case tea.KeyEnter:
			move, ok := ParseMove(m.input.Value())
			if !ok {
				m.errText = InvalidInput
				m.input.Reset()
				return m, nil
			}
			m.move = move
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m moveModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.input.View())
	if m.errText != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.errText))
	}
	return sb.String()
}
